package utils

import (
	"fmt"
	"os"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateRunID gera um run_id único por invocação: relógio de parede em
// UTC + identidade do processo + sufixo aleatório. Invocações concorrentes
// do mesmo job nunca colidem.
func GenerateRunID(now time.Time) (string, error) {
	suffix, err := gonanoid.Generate(characters, 6)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%d-%s", now.UTC().Format("20060102T150405"), os.Getpid(), suffix), nil
}
