package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Edu-Plus Attendance API",
        "description": "Attendance tracking and reconciliation for instructor programs",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Authentication", "description": "Login, signup and session management"},
        {"name": "Attendance", "description": "Instructor attendance reports"},
        {"name": "AdminAttendance", "description": "Admin-side attendance ledger"},
        {"name": "Statistics", "description": "Reconciled rollups and exports"},
        {"name": "Users", "description": "User management"},
        {"name": "Schedules", "description": "Weekly schedule and schools"},
        {"name": "Chat", "description": "Chat-based attendance entry"},
        {"name": "Assistant", "description": "AI assistant for admins"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "responses": {
                    "200": {"description": "Tokens issued"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register instructor account",
                "responses": {
                    "201": {"description": "Account created"},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "responses": {
                    "200": {"description": "Tokens rotated"},
                    "401": {"description": "Refresh token invalid"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Logout",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Session revoked"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Profile"}
                }
            }
        },
        "/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List my attendance reports",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Reports"}
                }
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Report attendance",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Report created"},
                    "403": {"description": "Month is closed"}
                }
            }
        },
        "/attendance/all": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List all attendance reports",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Reports"},
                    "403": {"description": "Admin only"}
                }
            }
        },
        "/attendance/{id}": {
            "put": {
                "tags": ["Attendance"],
                "summary": "Update attendance report",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Report updated"},
                    "403": {"description": "Month is closed or not owner"},
                    "404": {"description": "Report not found"}
                }
            },
            "delete": {
                "tags": ["Attendance"],
                "summary": "Delete attendance report",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Report deleted"},
                    "403": {"description": "Month is closed or not owner"}
                }
            }
        },
        "/attendance/{id}/admin-notes": {
            "patch": {
                "tags": ["Attendance"],
                "summary": "Set admin notes",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Notes stored"},
                    "403": {"description": "Admin only"}
                }
            }
        },
        "/admin-attendance": {
            "get": {
                "tags": ["AdminAttendance"],
                "summary": "List admin attendance records",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Records"}
                }
            },
            "post": {
                "tags": ["AdminAttendance"],
                "summary": "Create admin attendance record",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Record created"}
                }
            }
        },
        "/admin-attendance/{id}": {
            "put": {
                "tags": ["AdminAttendance"],
                "summary": "Update admin attendance record",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Record updated"},
                    "404": {"description": "Record not found"}
                }
            },
            "delete": {
                "tags": ["AdminAttendance"],
                "summary": "Delete admin attendance record",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Record deleted"}
                }
            }
        },
        "/stats": {
            "get": {
                "tags": ["Statistics"],
                "summary": "Attendance statistics",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "period", "in": "query", "type": "string", "description": "YYYY-MM or all"}
                ],
                "responses": {
                    "200": {"description": "Reconciled rollups"}
                }
            }
        },
        "/stats/export": {
            "get": {
                "tags": ["Statistics"],
                "summary": "Export statistics",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "period", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Profiles"}
                }
            }
        },
        "/users/{id}": {
            "delete": {
                "tags": ["Users"],
                "summary": "Deactivate user",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Profile deactivated"},
                    "403": {"description": "Cannot deactivate own account"}
                }
            }
        },
        "/users/{id}/toggle-role": {
            "post": {
                "tags": ["Users"],
                "summary": "Toggle user role",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Updated profile"}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List weekly schedule",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Schedule rows"}
                }
            },
            "post": {
                "tags": ["Schedules"],
                "summary": "Create schedule entry",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Entry created"}
                }
            }
        },
        "/schedules/today": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Today's schedule",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Schedule rows"}
                }
            }
        },
        "/schedules/mine": {
            "get": {
                "tags": ["Schedules"],
                "summary": "My schedule",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Schedule rows"}
                }
            }
        },
        "/schedules/{id}": {
            "put": {
                "tags": ["Schedules"],
                "summary": "Update schedule entry",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Entry updated"}
                }
            },
            "delete": {
                "tags": ["Schedules"],
                "summary": "Delete schedule entry",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Entry deleted"}
                }
            }
        },
        "/schools": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List schools",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Distinct schools"}
                }
            }
        },
        "/chat": {
            "post": {
                "tags": ["Chat"],
                "summary": "Chat attendance entry",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Report recorded"},
                    "422": {"description": "Command not understood"}
                }
            }
        },
        "/assistant": {
            "post": {
                "tags": ["Assistant"],
                "summary": "Ask the assistant",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Answer"}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
