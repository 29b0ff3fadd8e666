// Package weather resolves a requester's IP to a location and fetches a
// multi-day forecast for it, condensing the upstream payload into the small
// JSON report the clock display renders.
//
// Upstream weather condition types are mapped to the display's glyph
// indices; conditions the table does not know get a generic glyph rather
// than failing the request. Upstream responses missing their load-bearing
// fields surface as *DiagnosticError, which the HTTP layer maps to a 400
// response carrying the raw upstream body for diagnosis.
package weather
