// Package docs регистрирует swagger-спецификацию API цен для http-swagger.
// Обновляется командой: swag init -g cmd/app/app.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/products": {
            "get": {
                "description": "Возвращает все продукты с текущей ценой",
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Список продуктов",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/http.ProductSummaryResponse"}
                        }
                    },
                    "500": {"description": "Internal server error", "schema": {"type": "string"}}
                }
            }
        },
        "/api/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "История цен продукта",
                "parameters": [
                    {"type": "integer", "description": "ID продукта", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ProductHistoryResponse"}},
                    "400": {"description": "Invalid product id.", "schema": {"type": "string"}},
                    "404": {"description": "Product: <id> not found", "schema": {"type": "string"}},
                    "500": {"description": "Internal server error", "schema": {"type": "string"}}
                }
            }
        },
        "/api/products/{id}/apply-discount": {
            "post": {
                "description": "Уменьшает текущую цену на процент из [0, 100] и пишет новую цену в историю",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Применить скидку",
                "parameters": [
                    {"type": "integer", "description": "ID продукта", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Процент скидки",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.DiscountRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.DiscountResponse"}},
                    "400": {"description": "Ошибка валидации", "schema": {"type": "string"}},
                    "404": {"description": "Product: <id> not found", "schema": {"type": "string"}},
                    "500": {"description": "Internal server error", "schema": {"type": "string"}}
                }
            }
        },
        "/api/products/{id}/update-price": {
            "put": {
                "description": "Задаёт абсолютную цену (>= 0). Та же цена всё равно попадает в историю",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Установить новую цену",
                "parameters": [
                    {"type": "integer", "description": "ID продукта", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Новая цена",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.UpdatePriceRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.UpdatePriceResponse"}},
                    "400": {"description": "Ошибка валидации", "schema": {"type": "string"}},
                    "404": {"description": "Product: <id> not found", "schema": {"type": "string"}},
                    "500": {"description": "Internal server error", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "http.DiscountRequest": {
            "type": "object",
            "properties": {
                "discountPercentage": {"type": "number", "example": 10}
            }
        },
        "http.UpdatePriceRequest": {
            "type": "object",
            "properties": {
                "newPrice": {"type": "number", "example": 150}
            }
        },
        "http.ProductSummaryResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "Product A"},
                "price": {"type": "number", "example": 100},
                "lastUpdated": {"type": "string"}
            }
        },
        "http.PriceHistoryResponse": {
            "type": "object",
            "properties": {
                "price": {"type": "number", "example": 120},
                "date": {"type": "string"}
            }
        },
        "http.ProductHistoryResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "Product A"},
                "priceHistory": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/http.PriceHistoryResponse"}
                }
            }
        },
        "http.DiscountResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "Product A"},
                "originalPrice": {"type": "number", "example": 100},
                "discountedPrice": {"type": "number", "example": 90}
            }
        },
        "http.UpdatePriceResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "Product A"},
                "newPrice": {"type": "number", "example": 150},
                "lastUpdated": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Product Pricing API",
	Description:      "Список продуктов, история цен, скидки и установка новой цены.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
