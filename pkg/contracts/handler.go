// Package contracts holds the small interfaces pkg/app accepts, so service
// binaries can hand their route tables to the shared application shell.
package contracts

import "github.com/julienschmidt/httprouter"

type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
