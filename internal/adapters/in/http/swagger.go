package http

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/health": {
            "get": {"tags": ["ops"], "summary": "Liveness check", "responses": {"200": {"description": "OK"}}}
        },
        "/cart": {
            "get": {"tags": ["cart"], "summary": "Current cart of the caller", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["cart"], "summary": "Remove every line from the cart", "responses": {"200": {"description": "OK"}}}
        },
        "/cart/items": {
            "post": {"tags": ["cart"], "summary": "Add a variant to the cart", "responses": {"200": {"description": "OK"}}}
        },
        "/cart/items/{itemId}": {
            "patch": {"tags": ["cart"], "summary": "Set the quantity of a cart line", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["cart"], "summary": "Remove a cart line", "responses": {"200": {"description": "OK"}}}
        },
        "/cart/merge": {
            "post": {"tags": ["cart"], "summary": "Merge the guest cart into the user's cart", "responses": {"200": {"description": "OK"}}}
        },
        "/addresses": {
            "get": {"tags": ["addresses"], "summary": "Address book of the caller", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["addresses"], "summary": "Add an address", "responses": {"200": {"description": "OK"}}}
        },
        "/addresses/{id}": {
            "put": {"tags": ["addresses"], "summary": "Replace the details of an address", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["addresses"], "summary": "Delete an address", "responses": {"200": {"description": "OK"}}}
        },
        "/addresses/{id}/default": {
            "put": {"tags": ["addresses"], "summary": "Make an address the default", "responses": {"200": {"description": "OK"}}}
        },
        "/coupons/evaluate": {
            "post": {"tags": ["coupons"], "summary": "Evaluate a coupon against the cart", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/coupons": {
            "post": {"tags": ["admin"], "summary": "Publish a coupon", "responses": {"200": {"description": "OK"}}}
        },
        "/checkout/summary": {
            "post": {"tags": ["checkout"], "summary": "Price the cart for checkout", "responses": {"200": {"description": "OK"}}}
        },
        "/checkout/payment-intent": {
            "post": {"tags": ["checkout"], "summary": "Register the grand total with the payment gateway", "responses": {"200": {"description": "OK"}}}
        },
        "/orders": {
            "post": {"tags": ["orders"], "summary": "Place an order from the cart", "responses": {"200": {"description": "OK"}}},
            "get": {"tags": ["orders"], "summary": "Orders of the caller", "responses": {"200": {"description": "OK"}}}
        },
        "/orders/{id}": {
            "get": {"tags": ["orders"], "summary": "One order", "responses": {"200": {"description": "OK"}}}
        },
        "/orders/{id}/status": {
            "patch": {"tags": ["admin"], "summary": "Move an order along the fulfilment graph", "responses": {"200": {"description": "OK"}}}
        },
        "/orders/{id}/cancel": {
            "post": {"tags": ["orders"], "summary": "Cancel an order before it ships", "responses": {"200": {"description": "OK"}}}
        },
        "/payments/razorpay/callback": {
            "post": {"tags": ["payments"], "summary": "Apply a Razorpay payment notification", "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo is served by the /swagger/* route.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Checkout API",
	Description:      "Cart, address book, coupons, checkout and order lifecycle.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
