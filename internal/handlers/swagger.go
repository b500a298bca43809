package handlers

import (
	"html/template"

	"github.com/gin-gonic/gin"
)

var swaggerPage = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <link rel="stylesheet" type="text/css" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
    <style>
        html { box-sizing: border-box; overflow-y: scroll; }
        *, *:before, *:after { box-sizing: inherit; }
        body { margin: 0; padding: 0; }
        .login-hint { font-family: sans-serif; margin: 12px 20px; padding: 8px 12px; background: #f3f7ee; border-left: 4px solid #5b8c2a; }
    </style>
</head>
<body>
    <p class="login-hint">
        Get a token with <code>POST {{.TokenPath}}</code> using form fields <code>username</code> and
        <code>password</code>, then paste the <code>access_token</code> into Authorize.
    </p>
    <div id="swagger-ui"></div>
    <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-standalone-preset.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: "{{.DocURL}}",
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIStandalonePreset
                ],
                layout: "StandaloneLayout",
                // the Authorize dialog takes the bare token
                requestInterceptor: (request) => {
                    const auth = request.headers.Authorization;
                    if (auth && !auth.startsWith('Bearer ')) {
                        request.headers.Authorization = 'Bearer ' + auth;
                    }
                    return request;
                },
                persistAuthorization: true
            });
        };
    </script>
</body>
</html>
`))

type swaggerPageData struct {
	Title     string
	DocURL    string
	TokenPath string
}

// SwaggerUI serves the interactive docs for the OpenAPI document at docURL.
func SwaggerUI(docURL string) gin.HandlerFunc {
	data := swaggerPageData{
		Title:     "Farmstead API Documentation",
		DocURL:    docURL,
		TokenPath: "/token",
	}

	return func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		if err := swaggerPage.Execute(c.Writer, data); err != nil {
			c.Error(err)
		}
	}
}
