package document

import (
	"fmt"
	"strings"
)

// Characters that are unsafe in filenames on at least one supported
// platform. Each is replaced with a hyphen rather than stripped so distinct
// inputs stay distinct.
const unsafeFilenameChars = `<>:"/\|?*`

func sanitizeFilenamePart(part string) string {
	var b strings.Builder
	for _, r := range part {
		if strings.ContainsRune(unsafeFilenameChars, r) {
			b.WriteByte('-')
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Filename builds the download filename for a finalized quotation document:
// "<number> <client> - <job> (Final Quotation).pdf".
func Filename(quoteNumber, clientName, jobDescription string) string {
	return fmt.Sprintf("%s %s - %s (Final Quotation).pdf",
		sanitizeFilenamePart(quoteNumber),
		sanitizeFilenamePart(clientName),
		sanitizeFilenamePart(jobDescription))
}
