package middleware

import "net/http"

// Chain folds several middleware into one. The first argument ends up
// outermost, so the composed stack reads top to bottom in request order:
//
//	Chain(Recovery, RequestID, Logging)(handler)
//
// behaves like Recovery(RequestID(Logging(handler))).
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
