// Package middleware groups HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: validates a shared API key on protected route groups.
//   - rayid: assigns a unique ray ID to every incoming request and exposes
//     it through the context and response headers for log correlation.
//
// Middleware is registered in the serve command during facade setup, either
// globally or per route group.
package middleware
