// Package http provides the JSON REST adapters for the public site and its
// editor.
//
// Routes mount under /api:
//   - Sections: /content, /content/admin, /content/section/{section}, /content/{id}
//   - Events: /events, /events/{id}
//   - Projects: /projects, /projects/{id}
//   - Contact: /contact, /contact/{id}
//   - Settings: /settings, /settings/{key}
//   - Media: /media, /media/upload, /media/{id}
//   - Auth: /auth/login, /auth/setup, /auth/me, /auth/logout
//   - Health: /health
//
// Write routes and editor reads require a bearer token. Host applications
// register the handlers on their own mux or mount the mux under a router.
package http
