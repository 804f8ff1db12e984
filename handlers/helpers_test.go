// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"

	"github.com/danielhkuo/ballot-ledger/middleware"
	"github.com/danielhkuo/ballot-ledger/testutil"
)

// serve runs h behind actor authentication, as the router does
func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	middleware.WithActor(testutil.TestActorSalt, h)(w, req)
	return w
}

// withPath sets the {id} path value the router would normally fill in
func withPath(req *http.Request, id string) *http.Request {
	req.SetPathValue("id", id)
	return req
}
