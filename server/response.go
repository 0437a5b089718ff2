package server

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

type response struct {
	status int
	body   string

	// for the request log
	board string
	words int
}

func textResponse(status int, body string) response {
	return response{status: status, body: body}
}

func (r response) writeTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "HTTP/1.1 %d %s\r\n", r.status, http.StatusText(r.status))
	bw.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	bw.WriteString("Content-Length: " + strconv.Itoa(len(r.body)) + "\r\n")
	bw.WriteString("X-Content-Type-Options: nosniff\r\n")
	bw.WriteString("Connection: close\r\n")
	bw.WriteString("\r\n")
	bw.WriteString(r.body)
	return bw.Flush()
}
