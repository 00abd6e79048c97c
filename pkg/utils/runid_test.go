package utils

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRunID(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 5, 0, 0, time.UTC)

	t.Run("Invocações simultâneas nunca colidem", func(t *testing.T) {
		// Mesmo relógio e mesmo processo: só o sufixo aleatório separa
		// duas invocações disparadas no mesmo instante.
		first, err := GenerateRunID(now)
		require.NoError(t, err)

		second, err := GenerateRunID(now)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("Carrega relógio em UTC e identidade do processo", func(t *testing.T) {
		loc, err := time.LoadLocation("Asia/Shanghai")
		require.NoError(t, err)

		runID, err := GenerateRunID(now.In(loc))
		require.NoError(t, err)

		parts := strings.Split(runID, "-")
		require.Len(t, parts, 3)
		assert.Equal(t, "20250310T000500", parts[0])
		assert.Equal(t, fmt.Sprintf("%d", os.Getpid()), parts[1])
		assert.Len(t, parts[2], 6)
	})
}
