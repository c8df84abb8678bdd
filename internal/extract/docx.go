package extract

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"strings"
)

var (
	reRunText = regexp.MustCompile(`(?s)<w:t[^>]*>(.*?)</w:t>`)
	xmlUnesc  = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
	)
)

// extractDOCXText opens the DOCX zip container, loads word/document.xml and
// concatenates every <w:t> text run in order, with a newline between
// paragraphs (</w:p> boundaries). Anything unreadable yields "".
func extractDOCXText(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return ""
		}
		docXML, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return ""
		}
		break
	}
	if len(docXML) == 0 {
		return ""
	}

	var paragraphs []string
	for _, para := range strings.Split(string(docXML), "</w:p>") {
		var b strings.Builder
		for _, m := range reRunText.FindAllStringSubmatch(para, -1) {
			b.WriteString(xmlUnesc.Replace(m[1]))
		}
		if p := strings.TrimSpace(b.String()); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return strings.Join(paragraphs, "\n")
}
