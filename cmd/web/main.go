// @title           Terrible Football Liverpool API
// @version         1.0
// @description     Session sign-up portal: accounts, weekly sessions, notices and admin tools.
// @description     Form posts answer validation errors inline as 200 {"error": "..."} and redirect with 303 on success.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /

package main

import (
	_ "tfl_backend/docs"
	"tfl_backend/internal/app"
)

func main() {
	app.Run()
}
