package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"axiapac.com/attendance/security"
	"github.com/joho/godotenv"
)

// createtoken mints a dashboard token for an employee, for local testing.
func main() {
	_ = godotenv.Load()

	id := flag.Int64("id", 0, "employee id")
	name := flag.String("name", "", "unique name")
	admin := flag.Bool("admin", false, "allow acting for any employee")
	ttl := flag.Int64("ttl", 3600, "lifetime in seconds")
	flag.Parse()

	secret := os.Getenv("SIGNING_SECRET")
	if secret == "" || *id <= 0 {
		flag.Usage()
		log.Fatal("SIGNING_SECRET and -id are required")
	}

	token, err := security.CreateIdentityToken(&security.Identity{
		ID:         *id,
		UniqueName: *name,
		Admin:      *admin,
	}, secret, *ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
