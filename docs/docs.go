// Package docs provides Swagger documentation for the Go AutoQuote API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Go AutoQuote API",
        "description": "Personal Auto Insurance Quote and Bind API.\n\nThis API implements the full quote-to-bind workflow:\n1. **Quotes** - Build a quote section by section (drivers, vehicles, coverage)\n2. **Rating** - Every update reprices the quote with multiplicative factors\n3. **Bind** - A payment attempt converts a quoted record into a bound policy\n4. **Policies** - Bound policies with documents, payments, and status history",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/MrKriegler/go-autoquote"
        },
        "license": {
            "name": "MIT"
        },
        "version": "1.0.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "consumes": ["application/json"],
    "produces": ["application/json"],
    "paths": {
        "/quotes": {
            "post": {
                "tags": ["Quotes"],
                "summary": "Create a quote",
                "description": "Starts a new quote from whatever sections are supplied and prices it immediately. A quote with vehicles and coverage starts quoted; anything less starts incomplete.",
                "operationId": "createQuote",
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/QuoteInput"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Quote created",
                        "schema": {"$ref": "#/definitions/Policy"}
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    }
                }
            }
        },
        "/quotes/{reference}": {
            "get": {
                "tags": ["Quotes"],
                "summary": "Get a quote",
                "operationId": "getQuote",
                "parameters": [
                    {
                        "name": "reference",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Quote reference (e.g., AQ7GK2M9XP)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Successful response",
                        "schema": {"$ref": "#/definitions/Policy"}
                    },
                    "404": {
                        "description": "Quote not found",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    }
                }
            }
        },
        "/quotes/{reference}/drivers": {
            "put": {
                "tags": ["Quotes"],
                "summary": "Replace the driver section",
                "description": "Replaces the primary and additional drivers wholesale and reprices the quote. Additional drivers sharing the primary's email are dropped.",
                "operationId": "replaceDrivers",
                "parameters": [
                    {
                        "name": "reference",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ReplaceDriversRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated quote",
                        "schema": {"$ref": "#/definitions/Policy"}
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    },
                    "404": {
                        "description": "Quote not found",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    },
                    "409": {
                        "description": "Quote no longer editable",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    }
                }
            }
        },
        "/quotes/{reference}/vehicles": {
            "put": {
                "tags": ["Quotes"],
                "summary": "Replace the vehicle section",
                "description": "Replaces the vehicle list wholesale and reprices the quote.",
                "operationId": "replaceVehicles",
                "parameters": [
                    {
                        "name": "reference",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ReplaceVehiclesRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated quote",
                        "schema": {"$ref": "#/definitions/Policy"}
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    },
                    "404": {
                        "description": "Quote not found",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    },
                    "409": {
                        "description": "Quote no longer editable",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    }
                }
            }
        },
        "/quotes/{reference}/coverage": {
            "put": {
                "tags": ["Quotes"],
                "summary": "Finalize coverage",
                "description": "Stores the coverage selection, reprices, and moves an incomplete quote to quoted with a fresh 30-day validity window. Requires at least one vehicle.",
                "operationId": "finalizeCoverage",
                "parameters": [
                    {
                        "name": "reference",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CoverageSelection"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Quoted record",
                        "schema": {"$ref": "#/definitions/Policy"}
                    },
                    "400": {
                        "description": "No vehicles or invalid input",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    },
                    "404": {
                        "description": "Quote not found",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    },
                    "409": {
                        "description": "Quote no longer editable",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    }
                }
            }
        },
        "/quotes/{reference}:bind": {
            "post": {
                "tags": ["Quotes"],
                "summary": "Bind a quote",
                "description": "Attempts payment for the quoted premium. On success the quote becomes a bound policy with a 6-month term; on decline it returns to quoted.",
                "operationId": "bindQuote",
                "parameters": [
                    {
                        "name": "reference",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/BindRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Bound policy and payment record",
                        "schema": {"$ref": "#/definitions/BindResult"}
                    },
                    "402": {
                        "description": "Payment declined",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    },
                    "404": {
                        "description": "Quote not found",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    },
                    "409": {
                        "description": "Quote not in quoted status",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    }
                }
            }
        },
        "/policies/{reference}": {
            "get": {
                "tags": ["Policies"],
                "summary": "Get a policy",
                "operationId": "getPolicy",
                "parameters": [
                    {
                        "name": "reference",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Successful response",
                        "schema": {"$ref": "#/definitions/Policy"}
                    },
                    "404": {
                        "description": "Policy not found",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    }
                }
            }
        },
        "/policies/{reference}:activate": {
            "post": {
                "tags": ["Policies"],
                "summary": "Activate a bound policy",
                "description": "Moves a bound policy in force once its effective date arrives.",
                "operationId": "activatePolicy",
                "parameters": [
                    {
                        "name": "reference",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Activated policy",
                        "schema": {"$ref": "#/definitions/Policy"}
                    },
                    "404": {
                        "description": "Policy not found",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    },
                    "409": {
                        "description": "Policy not in bound status",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    }
                }
            }
        },
        "/policies/{reference}/documents": {
            "get": {
                "tags": ["Policies"],
                "summary": "List policy documents",
                "operationId": "listPolicyDocuments",
                "parameters": [
                    {
                        "name": "reference",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Successful response",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/Document"}
                        }
                    },
                    "404": {
                        "description": "Policy not found",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    }
                }
            }
        },
        "/policies/{reference}/events": {
            "get": {
                "tags": ["Policies"],
                "summary": "List policy status history",
                "operationId": "listPolicyEvents",
                "parameters": [
                    {
                        "name": "reference",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Successful response",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/Event"}
                        }
                    },
                    "404": {
                        "description": "Policy not found",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    }
                }
            }
        },
        "/policies/{reference}/payments": {
            "get": {
                "tags": ["Policies"],
                "summary": "List policy payments",
                "description": "Payment records carry tokenized details only (last four digits and brand).",
                "operationId": "listPolicyPayments",
                "parameters": [
                    {
                        "name": "reference",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Successful response",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/Payment"}
                        }
                    },
                    "404": {
                        "description": "Policy not found",
                        "schema": {"$ref": "#/definitions/ProblemDetails"}
                    }
                }
            }
        }
    },
    "definitions": {
        "Driver": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string", "example": "Maria"},
                "last_name": {"type": "string", "example": "Santos"},
                "email": {"type": "string", "example": "maria.santos@example.com"},
                "date_of_birth": {"type": "string", "example": "1987-04-12"},
                "license_number": {"type": "string"},
                "is_primary": {"type": "boolean"}
            }
        },
        "Vehicle": {
            "type": "object",
            "properties": {
                "year": {"type": "integer", "example": 2022},
                "make": {"type": "string", "example": "Toyota"},
                "model": {"type": "string", "example": "RAV4"},
                "vin": {"type": "string"}
            }
        },
        "Address": {
            "type": "object",
            "properties": {
                "street": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string", "example": "OR"},
                "zip": {"type": "string"}
            }
        },
        "CoverageSelection": {
            "type": "object",
            "properties": {
                "bodily_injury": {"type": "string", "enum": ["25/50", "50/100", "100/300", "250/500"]},
                "property_damage": {"type": "integer", "example": 50000},
                "collision": {"$ref": "#/definitions/DeductibleOption"},
                "comprehensive": {"$ref": "#/definitions/DeductibleOption"},
                "uninsured_motorist": {"type": "boolean"},
                "roadside_assistance": {"type": "boolean"},
                "rental_reimbursement": {"$ref": "#/definitions/RentalOption"}
            }
        },
        "DeductibleOption": {
            "type": "object",
            "properties": {
                "deductible": {"type": "integer", "enum": [250, 500, 1000, 2500]}
            }
        },
        "RentalOption": {
            "type": "object",
            "properties": {
                "daily_limit": {"type": "integer", "enum": [30, 50, 75]}
            }
        },
        "Premium": {
            "type": "object",
            "properties": {
                "total": {"type": "integer", "example": 1500},
                "monthly": {"type": "integer", "example": 125},
                "six_month": {"type": "integer", "example": 750}
            }
        },
        "QuoteInput": {
            "type": "object",
            "properties": {
                "driver": {"$ref": "#/definitions/Driver"},
                "additional_drivers": {"type": "array", "items": {"$ref": "#/definitions/Driver"}},
                "vehicles": {"type": "array", "items": {"$ref": "#/definitions/Vehicle"}},
                "address": {"$ref": "#/definitions/Address"},
                "coverages": {"$ref": "#/definitions/CoverageSelection"}
            }
        },
        "ReplaceDriversRequest": {
            "type": "object",
            "properties": {
                "driver": {"$ref": "#/definitions/Driver"},
                "additional_drivers": {"type": "array", "items": {"$ref": "#/definitions/Driver"}}
            }
        },
        "ReplaceVehiclesRequest": {
            "type": "object",
            "properties": {
                "vehicles": {"type": "array", "items": {"$ref": "#/definitions/Vehicle"}}
            }
        },
        "BindRequest": {
            "type": "object",
            "properties": {
                "method": {"type": "string", "enum": ["credit_card", "bank_transfer"]},
                "details": {"$ref": "#/definitions/PaymentDetails"}
            }
        },
        "PaymentDetails": {
            "type": "object",
            "properties": {
                "card_number": {"type": "string", "example": "4242424242424242"},
                "cvv": {"type": "string"},
                "expiry_month": {"type": "integer"},
                "expiry_year": {"type": "integer"},
                "routing_number": {"type": "string"},
                "account_number": {"type": "string"},
                "account_type": {"type": "string", "enum": ["checking", "savings"]}
            }
        },
        "BindResult": {
            "type": "object",
            "properties": {
                "policy": {"$ref": "#/definitions/Policy"},
                "payment": {"$ref": "#/definitions/Payment"}
            }
        },
        "Policy": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "reference": {"type": "string", "example": "AQ7GK2M9XP"},
                "status": {"type": "string", "enum": ["incomplete", "quoted", "binding", "bound", "in_force", "cancelled", "expired"]},
                "snapshot": {"$ref": "#/definitions/QuoteSnapshot"},
                "effective_date": {"type": "string", "format": "date-time"},
                "expiration_date": {"type": "string", "format": "date-time"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "QuoteSnapshot": {
            "type": "object",
            "properties": {
                "driver": {"$ref": "#/definitions/Driver"},
                "additional_drivers": {"type": "array", "items": {"$ref": "#/definitions/Driver"}},
                "vehicles": {"type": "array", "items": {"$ref": "#/definitions/Vehicle"}},
                "address": {"$ref": "#/definitions/Address"},
                "coverages": {"$ref": "#/definitions/CoverageSelection"},
                "premium": {"$ref": "#/definitions/Premium"},
                "meta": {"$ref": "#/definitions/SnapshotMeta"}
            }
        },
        "SnapshotMeta": {
            "type": "object",
            "properties": {
                "quote_ref": {"type": "string"},
                "version": {"type": "integer", "example": 1},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"},
                "finalized_at": {"type": "string", "format": "date-time"}
            }
        },
        "Payment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "policy_id": {"type": "string"},
                "method": {"type": "string", "enum": ["credit_card", "bank_transfer"]},
                "last4": {"type": "string", "example": "4242"},
                "card_brand": {"type": "string", "example": "Visa"},
                "account_type": {"type": "string"},
                "transaction_id": {"type": "string", "example": "txn_4f9a1c2e"},
                "amount": {"type": "integer"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "Document": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "policy_id": {"type": "string"},
                "policy_reference": {"type": "string"},
                "type": {"type": "string", "enum": ["declarations", "id_card"]},
                "name": {"type": "string", "example": "Declarations Page - AQ7GK2M9XP"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "Event": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "policy_id": {"type": "string"},
                "previous_status": {"type": "string"},
                "new_status": {"type": "string"},
                "reason": {"type": "string", "example": "payment accepted"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "ProblemDetails": {
            "type": "object",
            "description": "RFC 7807 Problem Details",
            "properties": {
                "type": {"type": "string", "example": "about:blank"},
                "title": {"type": "string", "example": "Not Found"},
                "status": {"type": "integer", "example": 404},
                "detail": {"type": "string", "example": "Resource not found"}
            }
        }
    },
    "tags": [
        {"name": "Quotes", "description": "Build, price, and bind auto quotes"},
        {"name": "Policies", "description": "Bound policies, documents, payments, and history"}
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Go AutoQuote API",
	Description:      "Personal Auto Insurance Quote and Bind API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
