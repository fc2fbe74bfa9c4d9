// +build ignore

package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
)

// Minimal drawing: one valid line, one phantom line on DEFPOINTS and a circle.
var sampleDXF = strings.Join([]string{
	"0", "SECTION",
	"2", "ENTITIES",
	"0", "LINE",
	"8", "0",
	"10", "5.0",
	"20", "5.0",
	"11", "105.0",
	"21", "5.0",
	"0", "LINE",
	"8", "DEFPOINTS",
	"10", "0.0",
	"20", "0.0",
	"11", "50.0",
	"21", "50.0",
	"0", "CIRCLE",
	"8", "0",
	"10", "55.0",
	"20", "55.0",
	"40", "20.0",
	"0", "ENDSEC",
	"0", "EOF",
}, "\n") + "\n"

func main() {
	addr := flag.String("addr", "http://localhost:8000", "API base URL")
	flag.Parse()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "sample.dxf")
	if err != nil {
		log.Fatalf("Failed to build form: %v", err)
	}
	if _, err := io.WriteString(part, sampleDXF); err != nil {
		log.Fatalf("Failed to write file part: %v", err)
	}
	if err := w.Close(); err != nil {
		log.Fatalf("Failed to close form: %v", err)
	}

	resp, err := http.Post(*addr+"/analyze-dxf", w.FormDataContentType(), &body)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("Failed to read response: %v", err)
	}

	fmt.Printf("Status: %s\n", resp.Status)
	fmt.Printf("Body: %s\n", data)
}
