// Package main Tournament Hub API
//
// Tournament Hub is the backend-for-frontend of an esports tournament site:
// players register, top up their wallet with manually reviewed deposit claims
// and pay entry fees to join scheduled matches, while admins manage
// tournaments, deposits, notifications and branding.
//
//	Schemes: http, https
//	Host: localhost:8080
//	BasePath: /api/v1
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
package main

import (
	"context"

	_ "github.com/saradorri/tournamenthub/docs"
	"github.com/saradorri/tournamenthub/internal/app"
)

// @title Tournament Hub API
// @version 1.0
// @description Tournament Hub serves the session view state, wallet, tournaments and admin tools of an esports tournament site.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	ctx := context.Background()
	application := app.NewApplication(ctx)
	application.Setup()
}
