// Command picstash runs the image hosting server. Configuration comes
// from environment variables; DATABASE_URL selects the SQLite database
// location.
package main

import (
	"log"

	"github.com/eringen/picstash"
)

func main() {
	app := picstash.New(picstash.Config{
		Addr:          picstash.EnvOr("ADDR", ":3000"),
		DatabaseURL:   picstash.MustEnv("DATABASE_URL"),
		DataDir:       picstash.EnvOr("DATA_DIR", "data/images"),
		SessionSecret: picstash.MustEnv("SESSION_SECRET"),
	})
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
