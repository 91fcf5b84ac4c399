package handlers

import "github.com/go-chi/chi/v5"

// Mountable is implemented by each feature handler (quotes, policies) so the
// router can mount them without knowing their routes.
type Mountable interface {
	Mount(r chi.Router)
}
