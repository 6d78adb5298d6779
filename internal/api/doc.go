// Package api provides an HTTP client for the shelter intake API.
//
// # Overview
//
// The Client is the single point of outbound communication. It hides
// transport details, header construction and the session token lifecycle
// from the rest of garenne. The token itself lives in a session.Store that is
// injected at construction time, so several isolated sessions can coexist.
//
// # Architecture
//
//   - client.go: Client construction, the Request funnel, login/logout, photos
//   - errors.go: the Error type and its Kind classification
//   - fiches.go, users.go, posts.go: thin CRUD passthroughs
//   - types.go: data structures mirroring the API schema
//
// # Client Usage
//
//	store := session.NewFileStore(cfg.SessionPath)
//	client, err := api.NewClient(cfg.APIURL, store, api.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	if _, err := client.Login(ctx, "admin", "adminpass"); err != nil {
//		return err
//	}
//	fiches, err := client.ListFiches(ctx)
//
// # API Endpoints
//
//   - POST /auth/token: obtain a bearer token
//   - POST /users/, GET /users/
//   - GET /ficheslapin/, GET/PUT/DELETE /ficheslapin/{id}, POST /ficheslapin/
//   - GET /posts/, POST /posts/, POST /posts/fiches/{ficheId}/posts,
//     DELETE /posts/{id}
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Set Content-Type and Accept to application/json
//   - Include User-Agent: garenne/0.1 and a fresh X-Request-ID
//   - Carry Authorization: Bearer <token> when a token is stored (except
//     /auth/token)
//   - Apply caller headers (WithHeader) last, so they win
//
// # Error Handling
//
// Every method returns *Error on failure:
//
//   - Transport: no response received (connection refused, timeout)
//   - Unauthorized: 401, the stored token was rejected
//   - NotFound: 404
//   - Validation: 400, 409, 422
//   - Unknown: any other status, or an undecodable body
//
// The message is the server's "detail" when present, otherwise
// "HTTP Error: <status>". Callers classify with IsUnauthorized or KindOf
// rather than inspecting the text.
//
// # Design Rationale
//
// The package is intentionally minimal:
//   - No caching (the UI reloads after every mutation)
//   - No retries (callers decide what to do with a failure)
//   - No validation (the server owns the rules)
package api
