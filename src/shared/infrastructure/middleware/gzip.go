package middleware

import (
	"compress/gzip"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
)

// GzipOptions opciones del middleware de compresión de respuestas
type GzipOptions struct {
	ExcludedPaths []string
}

// ForceGzipOptions opciones del middleware de compresión forzada
type ForceGzipOptions struct {
	CheckClientSupport bool
}

// GzipReader descomprime el body de las solicitudes entrantes que llegan
// con Content-Encoding: gzip
func GzipReader() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			reader, err := gzip.NewReader(c.Request.Body)
			if err != nil {
				c.AbortWithStatusJSON(400, gin.H{"error": "Invalid gzip body"})
				return
			}
			defer reader.Close()
			c.Request.Body = io.NopCloser(reader)
			c.Request.Header.Del("Content-Encoding")
			c.Request.ContentLength = -1
		}
		c.Next()
	}
}

// GzipMiddleware comprime las respuestas cuando el cliente lo soporta,
// salvo en las rutas excluidas
func GzipMiddleware(opts GzipOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, path := range opts.ExcludedPaths {
			if strings.HasPrefix(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}
		if !clientAcceptsGzip(c) {
			c.Next()
			return
		}
		compressResponse(c)
	}
}

// ForceGzipMiddleware comprime siempre, opcionalmente verificando soporte
// del cliente
func ForceGzipMiddleware(opts ForceGzipOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if opts.CheckClientSupport && !clientAcceptsGzip(c) {
			c.Next()
			return
		}
		compressResponse(c)
	}
}

func clientAcceptsGzip(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept-Encoding"), "gzip")
}

type gzipWriter struct {
	gin.ResponseWriter
	writer *gzip.Writer
}

func (w *gzipWriter) Write(data []byte) (int, error) {
	return w.writer.Write(data)
}

func (w *gzipWriter) WriteString(s string) (int, error) {
	return w.writer.Write([]byte(s))
}

func compressResponse(c *gin.Context) {
	gz := gzip.NewWriter(c.Writer)
	c.Header("Content-Encoding", "gzip")
	c.Header("Vary", "Accept-Encoding")
	c.Writer = &gzipWriter{ResponseWriter: c.Writer, writer: gz}
	defer func() {
		gz.Close()
		c.Header("Content-Length", "")
	}()
	c.Next()
}
