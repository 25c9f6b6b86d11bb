package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/csrf"

	"github.com/freshacres/go-farmstore/app/cmd"
	"github.com/freshacres/go-farmstore/app/configs"
	"github.com/freshacres/go-farmstore/app/routes"
	"github.com/freshacres/go-farmstore/app/utils/sessions"
)

func main() {
	env := configs.LoadEnv()
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Fatalf("Session keys not configured: %v", err)
	}
	store := sessions.NewCookieSessionStore(keys.AuthKey, keys.EncKey)
	log.Println("✅ Session store initialized.")

	router := routes.NewRouter(db, store)

	var handler http.Handler = router
	if env.CSRFKey != "" {
		csrfMiddleware := csrf.Protect([]byte(env.CSRFKey), csrf.Secure(false))
		handler = csrfMiddleware(router)
	} else {
		log.Println("Warning: CSRF_KEY not set, CSRF protection disabled")
	}

	server := http.Server{
		Addr:    env.Port,
		Handler: handler,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("server stopped:", err)
	}
}
