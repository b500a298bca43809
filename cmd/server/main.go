package main

// @title           Farmstead API
// @version         1.0
// @description     Farm management back end: farmers, tasks, inventory, transactions, assets, lands, crops and reports.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token
func main() {
	Execute()
}
