package utils

import "time"

// Yesterday retorna o dia anterior à referência, truncado à meia-noite.
func Yesterday(ref time.Time) time.Time {
	y := ref.AddDate(0, 0, -1)
	return time.Date(y.Year(), y.Month(), y.Day(), 0, 0, 0, 0, ref.Location())
}
