package report

import (
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// SummaryQR renders a PNG QR code identifying a decode run: block tallies
// followed by the run digest, so a printed report can be matched back to
// its record log.
func SummaryQR(sum Summary, size int) ([]byte, error) {
	payload, err := summaryPayload(sum)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = 128
	}
	return qrcode.Encode(payload, qrcode.Medium, size)
}

func summaryPayload(sum Summary) (string, error) {
	digest := strings.ToUpper(strings.TrimSpace(sum.Digest))
	if len(digest) != 64 || strings.Trim(digest, "0123456789ABCDEF") != "" {
		return "", errors.New("summary digest must be 64 hex characters")
	}
	return fmt.Sprintf("RT130 blocks=%d decoded=%d failed=%d samples=%d sha256=%s",
		sum.Total, sum.Decoded, sum.Failed, sum.Samples, digest), nil
}
