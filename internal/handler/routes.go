package handler

import (
	"net/http"

	"docit/internal/middleware"
)

// Handlers groups every HTTP handler the server mounts
type Handlers struct {
	Health  *HealthHandler
	Account *AccountHandler
	Folder  *FolderHandler
	List    *ListHandler
	Item    *ItemHandler
	Content *ContentHandler
	Chat    *ChatHandler
	Models  *ModelsHandler
	Billing *BillingHandler
	Events  *EventsHandler
}

// RegisterRoutes mounts the API on mux. Organizer, editor, chat and
// billing routes require a verified email; the dashboard does not, so an
// unverified user can still ask for a verification link.
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	verified := func(fn http.HandlerFunc) http.Handler {
		return middleware.RequireVerifiedEmail(fn)
	}

	// Health check
	mux.HandleFunc("GET /health", h.Health.HealthCheck)

	// Dashboard
	mux.HandleFunc("GET /api/me", h.Account.GetAccount)
	mux.HandleFunc("PUT /api/me/profile", h.Account.UpdateProfile)
	mux.HandleFunc("DELETE /api/me", h.Account.DeleteAccount)
	mux.HandleFunc("POST /api/me/password-reset", h.Account.SendPasswordReset)
	mux.HandleFunc("POST /api/me/email-verification", h.Account.SendEmailVerification)

	// Folder routes
	mux.Handle("GET /api/folders", verified(h.Folder.ListFolders))
	mux.Handle("POST /api/folders", verified(h.Folder.CreateFolder))
	mux.Handle("GET /api/folders/{folderID}", verified(h.Folder.GetFolder))
	mux.Handle("PATCH /api/folders/{folderID}", verified(h.Folder.UpdateFolder))
	mux.Handle("DELETE /api/folders/{folderID}", verified(h.Folder.DeleteFolder))

	// List routes
	const lists = "/api/folders/{folderID}/lists"
	mux.Handle("GET "+lists, verified(h.List.ListLists))
	mux.Handle("POST "+lists, verified(h.List.CreateList))
	mux.Handle("GET "+lists+"/{listID}", verified(h.List.GetList))
	mux.Handle("PATCH "+lists+"/{listID}", verified(h.List.UpdateList))
	mux.Handle("DELETE "+lists+"/{listID}", verified(h.List.DeleteList))

	// Item routes
	const items = lists + "/{listID}/items"
	const item = items + "/{itemID}"
	mux.Handle("GET "+items, verified(h.Item.ListItems))
	mux.Handle("POST "+items, verified(h.Item.CreateItem))
	mux.Handle("GET "+item, verified(h.Item.GetItem))
	mux.Handle("PATCH "+item, verified(h.Item.UpdateItem))
	mux.Handle("DELETE "+item, verified(h.Item.DeleteItem))
	mux.Handle("POST "+item+"/increment", verified(h.Item.IncrementCount))
	mux.Handle("POST "+item+"/decrement", verified(h.Item.DecrementCount))

	// Editor routes
	mux.Handle("GET "+item+"/content", verified(h.Content.GetContent))
	mux.Handle("PUT "+item+"/content", verified(h.Content.SaveContent))
	mux.Handle("PUT "+item+"/draft", verified(h.Content.SaveDraft))
	mux.Handle("GET "+item+"/markdown", verified(h.Content.ExportMarkdown))

	// Assistant routes
	mux.Handle("GET /api/models", verified(h.Models.GetModels))
	mux.Handle("POST /api/ai/summarize", verified(h.Chat.Summarize))
	mux.Handle("GET /api/chat", verified(h.Chat.GetTranscript))
	mux.Handle("POST /api/chat/messages", verified(h.Chat.SendMessage))
	mux.Handle("DELETE /api/chat", verified(h.Chat.ClearTranscript))

	// Billing routes
	mux.Handle("GET /api/billing/products", verified(h.Billing.ListProducts))
	mux.Handle("POST /api/billing/checkout", verified(h.Billing.CreateCheckout))
	mux.Handle("GET /api/billing/subscriptions", verified(h.Billing.ListSubscriptions))

	// Change notifications
	mux.Handle("GET /api/events", verified(h.Events.Stream))
}
