package employee

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// deptCodes maps departments to the prefix of generated employee IDs.
var deptCodes = map[string]string{
	"HR":         "HR",
	"Technology": "TEC",
	"Finance":    "FIN",
	"Sales":      "SAL",
	"Marketing":  "MKT",
	"Operations": "OPS",
	"Admin":      "ADM",
}

// GenerateEmployeeID builds an identifier of the form <DEPT><yymm><4 digits>,
// e.g. TEC26090042. The random suffix comes from crypto/rand; uniqueness is
// the caller's responsibility (retry on collision).
func GenerateEmployeeID(department string) (string, error) {
	code, ok := deptCodes[department]
	if !ok {
		code = "EMP"
	}
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s%04d", code, time.Now().Format("0601"), n.Int64()), nil
}
