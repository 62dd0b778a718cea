package handlers

import (
	_ "embed"
	"net/http"
)

// openAPIPath is where the router mounts the donorbook API description.
const openAPIPath = "/v1/openapi.json"

// openAPIDocument describes the ledger routes: donors, payments, expenses,
// stats, exports and staff auth.
//
//go:embed openapi.json
var openAPIDocument []byte

// docsPage renders openAPIDocument with Redoc for staff browsing /v1/docs.
const docsPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Donorbook API Docs</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>body { margin: 0; } redoc { display: block; height: 100vh; }</style>
</head>
<body>
  <redoc spec-url="` + openAPIPath + `"></redoc>
  <script src="https://cdn.jsdelivr.net/npm/redoc@2.2.0/bundles/redoc.standalone.js"></script>
</body>
</html>`

// OpenAPIJSON serves the embedded API description.
func (a *App) OpenAPIJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPIDocument)
}

// OpenAPIDocs serves the human readable docs page.
func (a *App) OpenAPIDocs(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(docsPage))
}
