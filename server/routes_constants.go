package server

// Route path constants. The bridge itself is mounted under the configured
// function base path (FUNCTION_BASE_PATH).
const (
	RouteContentBundle = "/content/{file}"
	RouteSite          = "/"
)
