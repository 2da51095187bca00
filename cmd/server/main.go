package main

import "salescrm/internal/app"

// @title           Sales CRM API
// @version         1.0
// @description     Role-based CRM: leads, assignment, conversion, customers.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
