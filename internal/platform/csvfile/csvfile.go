// Package csvfile lee y escribe archivos CSV completos (sin header).
//
// Las reescrituras son atómicas: se escribe a un archivo temporal en el
// mismo directorio y se renombra sobre el destino. Si algo falla, el
// archivo anterior queda intacto.
package csvfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/renameio/v2"
)

const filePerm os.FileMode = 0o644

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // la validación de cantidad de campos es del caller
	cr.LazyQuotes = true
	cr.ReuseRecord = false
	return cr
}

// Read parsea todas las filas de r. Las líneas vacías se ignoran.
// Un error de parseo se devuelve como *csv.ParseError.
func Read(r io.Reader) ([][]string, error) {
	rows, err := newReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReadFile abre path, lee todas las filas y cierra el archivo.
// Los errores de apertura se devuelven tal cual (os.IsNotExist funciona).
func ReadFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

// ReadStrict es Read pero no descarta las líneas en blanco: cada una
// aparece como una fila sin campos, en su posición.
func ReadStrict(r io.Reader) ([][]string, error) {
	lc := &lineCounter{r: r}
	cr := newReader(lc)

	var rows [][]string
	next := 1 // primera línea física todavía no cubierta por una fila
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		start, _ := cr.FieldPos(0)
		for ; next < start; next++ {
			rows = append(rows, []string{})
		}

		last := len(rec) - 1
		line, _ := cr.FieldPos(last)
		next = line + strings.Count(rec[last], "\n") + 1
		rows = append(rows, rec)
	}

	for ; next <= lc.lines(); next++ {
		rows = append(rows, []string{})
	}
	return rows, nil
}

// ReadFileStrict es ReadFile con la semántica de ReadStrict.
func ReadFileStrict(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadStrict(f)
}

// lineCounter cuenta las líneas físicas leídas de r.
type lineCounter struct {
	r        io.Reader
	newlines int
	size     int64
	last     byte
}

func (c *lineCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.newlines += bytes.Count(p[:n], []byte{'\n'})
		c.size += int64(n)
		c.last = p[n-1]
	}
	return n, err
}

// lines: una última línea sin '\n' final también cuenta.
func (c *lineCounter) lines() int {
	if c.size > 0 && c.last != '\n' {
		return c.newlines + 1
	}
	return c.newlines
}

// Write escribe rows en w y hace flush.
func Write(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("csvfile: write: %w", err)
	}
	return nil
}

// WriteFile reemplaza path con rows de forma atómica.
// Si path ya existe se conservan sus permisos.
func WriteFile(path string, rows [][]string) error {
	pf, err := renameio.NewPendingFile(path,
		renameio.WithPermissions(filePerm),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return err
	}
	defer pf.Cleanup()

	if err := Write(pf, rows); err != nil {
		return err
	}
	return pf.CloseAtomicallyReplace()
}

// AppendFile agrega una fila al final de path (lo crea si no existe).
// Si el archivo no termina en salto de línea, se agrega uno antes.
func AppendFile(path string, row []string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, filePerm)
	if err != nil {
		return err
	}

	werr := appendRow(f, row)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

func appendRow(f *os.File, row []string) error {
	st, err := f.Stat()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if st.Size() > 0 {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, st.Size()-1); err != nil {
			return err
		}
		if last[0] != '\n' {
			buf.WriteByte('\n')
		}
	}

	if err := Write(&buf, [][]string{row}); err != nil {
		return err
	}
	_, err = f.Write(buf.Bytes())
	return err
}
