// devtoken emite un JWT HS256 con rol para probar el gateway sin el API de inventario.
// El gateway acepta el rol del token solo si JWT_SECRET está configurado.
//
// Uso: go run ./cmd/devtoken -role store_manager -user 42 [-minutes 60]
// El secreto y el issuer se leen de JWT_SECRET / JWT_ISSUER (o .env).
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/access"
	"github.com/jhoicas/Inventario-dashboard/pkg/config"
	"github.com/jhoicas/Inventario-dashboard/pkg/jwt"
)

func main() {
	role := flag.String("role", string(access.RoleStaff), "rol del token")
	user := flag.String("user", "1", "id de usuario (claim sub)")
	minutes := flag.Int("minutes", 0, "vigencia en minutos (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	if _, ok := access.ParseRole(*role); !ok {
		names := make([]string, 0, len(access.Roles))
		for _, r := range access.Roles {
			names = append(names, string(r))
		}
		fmt.Fprintf(os.Stderr, "Rol desconocido %q (válidos: %s)\n", *role, strings.Join(names, ", "))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no está configurado")
		os.Exit(1)
	}
	exp := *minutes
	if exp <= 0 {
		exp = cfg.JWT.Expiration
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
	fmt.Fprintf(os.Stderr, "Landing: %s\n", access.DefaultLanding(*role))
}
