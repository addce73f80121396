package handler

import (
	"errors"
	"net/http"

	"docit/internal/domain"
	"docit/internal/domain/models"
	"docit/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrEmailNotVerified):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &conflictErr):
		var extras map[string]interface{}
		if conflictErr.ResourceType != "" {
			extras = map[string]interface{}{
				"resource_type": conflictErr.ResourceType,
				"resource_id":   conflictErr.ResourceID,
			}
		}
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), extras)
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrTimeout):
		httputil.RespondError(w, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		httputil.RespondError(w, http.StatusBadGateway, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody parses the JSON body into dest, writing a 413 for oversized
// bodies and a 400 for anything else unreadable
func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	err := httputil.ParseJSON(w, r, dest)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
	return false
}

// PathParam extracts a required path parameter.
// Writes a 400 and returns false when it is empty.
func PathParam(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	value := r.PathValue(name)
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" is required")
		return "", false
	}
	return value, true
}

// requireSession returns the caller's session, writing a 401 when signed out
func requireSession(w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	session := httputil.GetSession(r)
	if session == nil || session.UserID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "not signed in")
		return nil, false
	}
	return session, true
}

// folderPath builds the caller's folder address from {folderID}
func folderPath(w http.ResponseWriter, r *http.Request) (models.FolderPath, bool) {
	session, ok := requireSession(w, r)
	if !ok {
		return models.FolderPath{}, false
	}
	folderID, ok := PathParam(w, r, "folderID", "Folder ID")
	if !ok {
		return models.FolderPath{}, false
	}
	return models.FolderPath{UserID: session.UserID, FolderID: folderID}, true
}

func listPath(w http.ResponseWriter, r *http.Request) (models.ListPath, bool) {
	folder, ok := folderPath(w, r)
	if !ok {
		return models.ListPath{}, false
	}
	listID, ok := PathParam(w, r, "listID", "List ID")
	if !ok {
		return models.ListPath{}, false
	}
	return models.ListPath{UserID: folder.UserID, FolderID: folder.FolderID, ListID: listID}, true
}

func itemPath(w http.ResponseWriter, r *http.Request) (models.ItemPath, bool) {
	list, ok := listPath(w, r)
	if !ok {
		return models.ItemPath{}, false
	}
	itemID, ok := PathParam(w, r, "itemID", "Item ID")
	if !ok {
		return models.ItemPath{}, false
	}
	return models.ItemPath{UserID: list.UserID, FolderID: list.FolderID, ListID: list.ListID, ItemID: itemID}, true
}
