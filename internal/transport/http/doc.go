// Package http contains the HTTP handlers for the report API. Handlers
// depend on service interfaces, render JSON via chi/render, and route
// all failures through the shared error handler.
package http
