package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const swaggerUIHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width,initial-scale=1" />
    <title>Article Backend API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: "/docs/openapi.json",
        dom_id: "#swagger-ui",
        deepLinking: true,
        presets: [SwaggerUIBundle.presets.apis],
        layout: "BaseLayout"
      });
    </script>
  </body>
</html>`

func SwaggerUI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerUIHTML))
}

func OpenAPI(c *gin.Context) {
	c.JSON(http.StatusOK, openAPIDocument)
}

func ref(name string) gin.H {
	return gin.H{"$ref": "#/components/schemas/" + name}
}

func jsonBody(schema gin.H) gin.H {
	return gin.H{"content": gin.H{"application/json": gin.H{"schema": schema}}}
}

func okResponse(description string, schema gin.H) gin.H {
	return gin.H{"200": gin.H{"description": description, "content": gin.H{"application/json": gin.H{"schema": schema}}}}
}

func arrayOf(name string) gin.H {
	return gin.H{"type": "array", "items": ref(name)}
}

func queryParam(name, typ, description string) gin.H {
	return gin.H{"name": name, "in": "query", "required": false, "description": description, "schema": gin.H{"type": typ}}
}

var (
	bearer  = []gin.H{{"bearerAuth": []string{}}}
	idParam = gin.H{"name": "id", "in": "path", "required": true, "schema": gin.H{"type": "integer"}}
)

var openAPIDocument = gin.H{
	"openapi": "3.0.0",
	"info": gin.H{
		"title":       "Article Backend API",
		"version":     "1.0.0",
		"description": "API for managing articles and categories",
	},
	"servers": []gin.H{{"url": "/api"}},
	"components": gin.H{
		"securitySchemes": gin.H{
			"bearerAuth": gin.H{"type": "http", "scheme": "bearer", "bearerFormat": "JWT"},
		},
		"schemas": gin.H{
			"User": gin.H{"type": "object", "properties": gin.H{
				"id":        gin.H{"type": "integer"},
				"username":  gin.H{"type": "string"},
				"role":      gin.H{"type": "string", "enum": []string{"User", "Admin"}},
				"createdAt": gin.H{"type": "string", "format": "date-time"},
				"updatedAt": gin.H{"type": "string", "format": "date-time"},
			}},
			"Category": gin.H{"type": "object", "properties": gin.H{
				"id":        gin.H{"type": "integer"},
				"name":      gin.H{"type": "string"},
				"userId":    gin.H{"type": "integer"},
				"createdAt": gin.H{"type": "string", "format": "date-time"},
				"updatedAt": gin.H{"type": "string", "format": "date-time"},
			}},
			"Article": gin.H{"type": "object", "properties": gin.H{
				"id":         gin.H{"type": "integer"},
				"title":      gin.H{"type": "string"},
				"content":    gin.H{"type": "string"},
				"userId":     gin.H{"type": "integer"},
				"categoryId": gin.H{"type": "integer"},
				"createdAt":  gin.H{"type": "string", "format": "date-time"},
				"updatedAt":  gin.H{"type": "string", "format": "date-time"},
				"category":   ref("Category"),
				"user": gin.H{"type": "object", "properties": gin.H{
					"id":       gin.H{"type": "integer"},
					"username": gin.H{"type": "string"},
				}},
			}},
			"ArticleEvent": gin.H{"type": "object", "properties": gin.H{
				"id":        gin.H{"type": "integer"},
				"articleId": gin.H{"type": "integer"},
				"userId":    gin.H{"type": "integer"},
				"action":    gin.H{"type": "string", "enum": []string{"created", "updated", "deleted"}},
				"createdAt": gin.H{"type": "string", "format": "date-time"},
			}},
			"Credentials": gin.H{"type": "object", "required": []string{"username", "password"}, "properties": gin.H{
				"username": gin.H{"type": "string"},
				"password": gin.H{"type": "string"},
				"role":     gin.H{"type": "string", "enum": []string{"User", "Admin"}},
			}},
			"Token": gin.H{"type": "object", "properties": gin.H{
				"token": gin.H{"type": "string"},
			}},
			"Message": gin.H{"type": "object", "properties": gin.H{
				"message": gin.H{"type": "string"},
			}},
			"Error": gin.H{"type": "object", "properties": gin.H{
				"error": gin.H{"type": "string"},
				"code":  gin.H{"type": "string"},
			}},
		},
	},
	"paths": gin.H{
		"/auth/register": gin.H{
			"post": gin.H{"summary": "Register a new user", "tags": []string{"Auth"},
				"requestBody": jsonBody(ref("Credentials")), "responses": okResponse("Token", ref("Token"))},
		},
		"/auth/login": gin.H{
			"post": gin.H{"summary": "Log in", "tags": []string{"Auth"},
				"requestBody": jsonBody(ref("Credentials")), "responses": okResponse("Token", ref("Token"))},
		},
		"/auth/profile": gin.H{
			"get": gin.H{"summary": "Current user", "tags": []string{"Auth"}, "security": bearer,
				"responses": okResponse("User", ref("User"))},
		},
		"/categories": gin.H{
			"get": gin.H{"summary": "List categories", "tags": []string{"Categories"},
				"responses": okResponse("Categories", arrayOf("Category"))},
			"post": gin.H{"summary": "Create a category (Admin)", "tags": []string{"Categories"}, "security": bearer,
				"requestBody": jsonBody(ref("Category")), "responses": okResponse("Category", ref("Category"))},
		},
		"/categories/{id}": gin.H{
			"put": gin.H{"summary": "Update a category (Admin)", "tags": []string{"Categories"}, "security": bearer,
				"parameters": []gin.H{idParam}, "requestBody": jsonBody(ref("Category")), "responses": okResponse("Category", ref("Category"))},
			"delete": gin.H{"summary": "Delete a category (Admin)", "tags": []string{"Categories"}, "security": bearer,
				"parameters": []gin.H{idParam}, "responses": okResponse("Deleted", ref("Message"))},
		},
		"/articles": gin.H{
			"get": gin.H{"summary": "List articles", "tags": []string{"Articles"},
				"parameters": []gin.H{
					queryParam("articleId", "integer", "Article id"),
					queryParam("userId", "integer", "Author id"),
					queryParam("title", "string", "Case-insensitive title substring"),
					queryParam("category", "integer", "Category id"),
					queryParam("createdAtStart", "string", "Inclusive lower bound, RFC3339 or YYYY-MM-DD"),
					queryParam("createdAtEnd", "string", "Inclusive upper bound, RFC3339 or YYYY-MM-DD"),
					queryParam("sortBy", "string", "Article field to sort by"),
					queryParam("sortOrder", "string", "asc or desc"),
				},
				"responses": okResponse("Articles", arrayOf("Article"))},
			"post": gin.H{"summary": "Create an article", "tags": []string{"Articles"}, "security": bearer,
				"requestBody": jsonBody(ref("Article")), "responses": okResponse("Article", ref("Article"))},
		},
		"/articles/{id}": gin.H{
			"put": gin.H{"summary": "Update an article (owner or Admin)", "tags": []string{"Articles"}, "security": bearer,
				"parameters": []gin.H{idParam}, "requestBody": jsonBody(ref("Article")), "responses": okResponse("Article", ref("Article"))},
			"delete": gin.H{"summary": "Delete an article (owner or Admin)", "tags": []string{"Articles"}, "security": bearer,
				"parameters": []gin.H{idParam}, "responses": okResponse("Deleted", ref("Message"))},
		},
		"/admin/article-events": gin.H{
			"get": gin.H{"summary": "Article audit trail (Admin)", "tags": []string{"Admin"}, "security": bearer,
				"parameters": []gin.H{
					queryParam("articleId", "integer", "Article id"),
					queryParam("limit", "integer", "Maximum events, default 100, at most 500"),
				},
				"responses": okResponse("Events", arrayOf("ArticleEvent"))},
		},
	},
}
