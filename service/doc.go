/*
Package service provides standard configuration and utilities for a service.

Services contain a cli (cobra.Command), http handlers (mux.Router),
a cross origin policy (cors.Policy), and a metrics interface (prometheus.Registerer).
*/
package service
