package handlers

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/url"

	"robotdemo/internal/action"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	respondStatus(w, http.StatusOK, v)
}

func respondStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func respondAction(w http.ResponseWriter, st action.State) {
	status := http.StatusOK
	switch {
	case st.Success:
	case st.Error == action.MsgRobotNotFound:
		status = http.StatusNotFound
	case st.Error == action.MsgUserNotFound:
		status = http.StatusUnauthorized
	default:
		status = http.StatusUnprocessableEntity
	}
	respondStatus(w, status, st)
}

const maxFormBytes = 1 << 20

// readForm collects submitted fields from a url-encoded, multipart or JSON
// body. JSON members that are not strings are ignored.
func readForm(r *http.Request) (url.Values, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/json":
		var body map[string]interface{}
		if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxFormBytes)).Decode(&body); err != nil {
			return nil, err
		}
		form := url.Values{}
		for k, v := range body {
			if s, ok := v.(string); ok {
				form.Set(k, s)
			}
		}
		return form, nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormBytes); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	default:
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	}
}
