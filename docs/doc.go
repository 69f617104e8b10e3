// Package docs holds the OpenAPI document served at /swagger.
//
// docs.go follows the layout swag emits. Run go generate here after changing
// handler annotations in cmd/gateway.
package docs

//go:generate swag init -g main.go -d ../cmd/gateway,../pkg/book -o . --outputTypes go
