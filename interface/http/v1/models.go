package v1

import (
	"encoding/json"
	"github.com/switchyard/controller/model"
	"net/http"
)

// listModels returns the known models, for selecting one for offline programming.
func listModels(w http.ResponseWriter, r *http.Request) {
	data, err := json.Marshal(model.All())
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, data)
}
