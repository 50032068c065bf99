package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/produflow/produflow-api/internal/domain/model"
	"github.com/produflow/produflow-api/pkg/security"
)

// Gera um token JWT de administrador para uso em scripts e diagnóstico.
func main() {
	var (
		userID string
		papel  string
	)

	flag.StringVar(&userID, "user_id", "", "ID do usuário")
	flag.StringVar(&papel, "papel", model.PapelAdmin, "Papel a embutir no token (admin, gestor, membro)")
	flag.Parse()

	if userID == "" {
		fmt.Println("Erro: o ID do usuário não pode ser vazio.")
		fmt.Println("Uso: generatetoken -user_id=<ID do usuário> [-papel=admin]")
		os.Exit(1)
	}

	if !model.PapelValido(papel) {
		fmt.Printf("Erro: papel desconhecido %q\n", papel)
		os.Exit(1)
	}

	secretKey := security.GetJWTSecret()
	if len(secretKey) == 0 {
		fmt.Println("Erro: nenhum segredo JWT configurado.")
		fmt.Println("Configure JWT_SECRET_KEY, PF_AUTH_JWTSECRET ou auth.jwtsecret no config.yaml")
		os.Exit(1)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"papel":   papel,
		"exp":     now.Add(24 * time.Hour).Unix(),
		"iat":     now.Unix(),
		"nbf":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		fmt.Printf("Erro ao assinar token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Token gerado (válido por 24h):")
	fmt.Println(tokenString)
}
