package flatfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/logger"
)

var (
	rex = pets.Pet{ID: "1", Name: "Rex", Species: "Dog", Age: "24", Gender: "M", Weight: "15", Description: "friendly"}
	mia = pets.Pet{ID: "2", Name: "Mia", Species: "Cat", Age: "12", Gender: "F", Weight: "4", Description: "shy"}
)

func newStore(t *testing.T, content string) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pets.csv")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	s, err := New(path, logger.Nop())
	require.NoError(t, err)
	return s
}

func fetch(t *testing.T, s *Store) []pets.Pet {
	t.Helper()
	items, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	return items
}

func readRaw(t *testing.T, s *Store) string {
	t.Helper()
	b, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	return string(b)
}

func TestNew_RequiresPath(t *testing.T) {
	_, err := New("  ", nil)
	require.Error(t, err)
}

func TestFetchAll_MissingFileIsEmpty(t *testing.T) {
	s := newStore(t, "")

	items := fetch(t, s)
	assert.Empty(t, items)
}

func TestFetchAll_DropsRowsWithWrongFieldCount(t *testing.T) {
	s := newStore(t, ""+
		"1,Rex,Dog,24,M,15,friendly\n"+
		"a,b,c,d,e\n"+
		"x,1,2,3,4,5,6,7,8\n"+
		"2,Mia,Cat,12,F,4,shy\n")

	items := fetch(t, s)
	if diff := cmp.Diff([]pets.Pet{rex, mia}, items); diff != "" {
		t.Fatalf("FetchAll mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchAll_UnreadablePathIsStorageReadError(t *testing.T) {
	// un directorio no se puede leer como archivo
	dir := t.TempDir()
	s, err := New(dir, nil)
	require.NoError(t, err)

	_, err = s.FetchAll(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, pets.ErrStorageRead))
}

func TestAdd_ThenFetchContainsRecordOnce(t *testing.T) {
	s := newStore(t, "")
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, rex))
	require.NoError(t, s.Add(ctx, mia))

	items := fetch(t, s)
	if diff := cmp.Diff([]pets.Pet{rex, mia}, items); diff != "" {
		t.Fatalf("FetchAll mismatch (-want +got):\n%s", diff)
	}
}

func TestAdd_QuotesEmbeddedDelimiters(t *testing.T) {
	s := newStore(t, "")
	p := pets.Pet{ID: "3", Name: "Bo", Species: "Dog", Age: "3", Gender: "M", Weight: "8", Description: "loves \"walks\", naps\nand treats"}

	require.NoError(t, s.Add(context.Background(), p))

	items := fetch(t, s)
	require.Len(t, items, 1)
	assert.Equal(t, p, items[0])
}

func TestAdd_DuplicateIDFailsAndLeavesFileUnchanged(t *testing.T) {
	s := newStore(t, "1,Rex,Dog,24,M,15,friendly\n")
	before := readRaw(t, s)

	dup := mia
	dup.ID = "1"
	err := s.Add(context.Background(), dup)

	require.Error(t, err)
	assert.True(t, errors.Is(err, pets.ErrDuplicateKey))
	assert.Equal(t, before, readRaw(t, s))
}

func TestAdd_DuplicateCheckIgnoresMalformedRows(t *testing.T) {
	// la fila "9,a,b" no es válida, así que su id no cuenta
	s := newStore(t, "9,a,b\n")

	p := rex
	p.ID = "9"
	require.NoError(t, s.Add(context.Background(), p))

	assert.Equal(t, []pets.Pet{p}, fetch(t, s))
}

func TestUpdate_ChangesOnlyGivenFields(t *testing.T) {
	s := newStore(t, "1,Rex,Dog,24,M,15,friendly\n2,Mia,Cat,12,F,4,shy\n")

	got, err := s.Update(context.Background(), "1", pets.Patch{Weight: "16"})
	require.NoError(t, err)

	want := rex
	want.Weight = "16"
	assert.Equal(t, want, got)

	if diff := cmp.Diff([]pets.Pet{want, mia}, fetch(t, s)); diff != "" {
		t.Fatalf("after update (-want +got):\n%s", diff)
	}
}

func TestUpdate_KeepsPositionInMiddle(t *testing.T) {
	s := newStore(t, "")
	ctx := context.Background()
	third := pets.Pet{ID: "3", Name: "Kiwi", Species: "Bird", Age: "1", Gender: "F", Weight: "1", Description: "loud"}
	for _, p := range []pets.Pet{rex, mia, third} {
		require.NoError(t, s.Add(ctx, p))
	}

	_, err := s.Update(ctx, "2", pets.Patch{Name: "Mimi", Description: "calm"})
	require.NoError(t, err)

	items := fetch(t, s)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{items[0].ID, items[1].ID, items[2].ID})
	assert.Equal(t, "Mimi", items[1].Name)
	assert.Equal(t, "calm", items[1].Description)
	assert.Equal(t, "Cat", items[1].Species)
}

func TestUpdate_PatchesEveryRowWithSameID(t *testing.T) {
	s := newStore(t, "1,Rex,Dog,24,M,15,friendly\n2,Mia,Cat,12,F,4,shy\n1,Rex2,Dog,24,M,15,friendly\n")

	got, err := s.Update(context.Background(), "1", pets.Patch{Weight: "99"})
	require.NoError(t, err)
	assert.Equal(t, "Rex", got.Name)
	assert.Equal(t, "99", got.Weight)

	assert.Equal(t,
		"1,Rex,Dog,24,M,99,friendly\n2,Mia,Cat,12,F,4,shy\n1,Rex2,Dog,24,M,99,friendly\n",
		readRaw(t, s))
}

func TestUpdateRemove_IDsMatchExactly(t *testing.T) {
	s := newStore(t, " 7,Rex,Dog,24,M,15,friendly\n7,Mia,Cat,12,F,4,shy\n")
	ctx := context.Background()

	got, err := s.Update(ctx, " 7", pets.Patch{Name: "Max"})
	require.NoError(t, err)
	assert.Equal(t, " 7", got.ID)

	require.NoError(t, s.Remove(ctx, "7"))
	items := fetch(t, s)
	require.Len(t, items, 1)
	assert.Equal(t, " 7", items[0].ID)
	assert.Equal(t, "Max", items[0].Name)
}

func TestUpdate_NotFound(t *testing.T) {
	s := newStore(t, "1,Rex,Dog,24,M,15,friendly\n")
	before := readRaw(t, s)

	_, err := s.Update(context.Background(), "404", pets.Patch{Name: "Ghost"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, pets.ErrNotFound))
	assert.Equal(t, before, readRaw(t, s))
}

func TestUpdate_RewriteDropsMalformedRows(t *testing.T) {
	s := newStore(t, "1,Rex,Dog,24,M,15,friendly\nbroken,row\n")

	_, err := s.Update(context.Background(), "1", pets.Patch{})
	require.NoError(t, err)

	assert.Equal(t, "1,Rex,Dog,24,M,15,friendly\n", readRaw(t, s))
}

func TestRemove_DropsRecordAndShrinksByOne(t *testing.T) {
	s := newStore(t, "1,Rex,Dog,24,M,15,friendly\n2,Mia,Cat,12,F,4,shy\n")
	ctx := context.Background()

	require.NoError(t, s.Remove(ctx, "2"))

	items := fetch(t, s)
	assert.Equal(t, []pets.Pet{rex}, items)
}

func TestRemove_NotFoundLeavesCollectionUnchanged(t *testing.T) {
	s := newStore(t, "1,Rex,Dog,24,M,15,friendly\n2,Mia,Cat,12,F,4,shy\n")
	before := fetch(t, s)
	raw := readRaw(t, s)

	err := s.Remove(context.Background(), "3")

	require.Error(t, err)
	assert.True(t, errors.Is(err, pets.ErrNotFound))
	assert.Equal(t, before, fetch(t, s))
	assert.Equal(t, raw, readRaw(t, s))
}

func TestExportImport_RoundTrip(t *testing.T) {
	s := newStore(t, "")
	ctx := context.Background()
	odd := pets.Pet{ID: "3", Name: "Bo, Jr.", Species: "Dog", Age: "3", Gender: "M", Weight: "8", Description: "line1\nline2"}
	for _, p := range []pets.Pet{rex, mia, odd} {
		require.NoError(t, s.Add(ctx, p))
	}
	atExport := fetch(t, s)

	dst := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, s.Export(ctx, dst))

	imported, err := s.Import(ctx, dst)
	require.NoError(t, err)

	if diff := cmp.Diff(atExport, imported); diff != "" {
		t.Fatalf("round trip mismatch (-export +import):\n%s", diff)
	}
}

func TestExport_UnwritableDestination(t *testing.T) {
	s := newStore(t, "1,Rex,Dog,24,M,15,friendly\n")

	err := s.Export(context.Background(), filepath.Join(t.TempDir(), "missing-dir", "out.csv"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, pets.ErrStorageWrite))
}

func TestImport_OneMalformedRowRejectsBatch(t *testing.T) {
	s := newStore(t, "")
	src := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(src, []byte(""+
		"1,Rex,Dog,24,M,15,friendly\n"+
		"2,Mia,Cat,12,F,4\n"+
		"3,Kiwi,Bird,1,F,1,loud\n"), 0o644))

	items, err := s.Import(context.Background(), src)

	require.Error(t, err)
	assert.Nil(t, items)
	assert.True(t, errors.Is(err, pets.ErrFormat))

	var ferr *pets.FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, 2, ferr.Line)
	assert.Equal(t, 6, ferr.Fields)
}

func TestImport_DoesNotWrite(t *testing.T) {
	s := newStore(t, "1,Rex,Dog,24,M,15,friendly\n")
	before := readRaw(t, s)

	src := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(src, []byte("2,Mia,Cat,12,F,4,shy\n"), 0o644))

	items, err := s.Import(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []pets.Pet{mia}, items)
	assert.Equal(t, before, readRaw(t, s))
}

func TestImport_MissingSourceIsStorageReadError(t *testing.T) {
	s := newStore(t, "")

	_, err := s.Import(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, pets.ErrStorageRead))
}

func TestImport_BlankLineRejectsBatch(t *testing.T) {
	s := newStore(t, "")
	src := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(src, []byte("1,Rex,Dog,24,M,15,friendly\n\n2,Mia,Cat,12,F,4,shy\n"), 0o644))

	items, err := s.Import(context.Background(), src)
	assert.True(t, errors.Is(err, pets.ErrFormat))
	assert.Nil(t, items)
}

func TestMerge_ExistingWinsAndSingleRewrite(t *testing.T) {
	s := newStore(t, "1,Rex,Dog,24,M,15,friendly\n")
	impostor := rex
	impostor.Name = "Impostor"

	added, skipped, err := s.Merge(context.Background(), []pets.Pet{impostor, mia})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, []string{"1"}, skipped)

	if diff := cmp.Diff([]pets.Pet{rex, mia}, fetch(t, s)); diff != "" {
		t.Fatalf("after merge (-want +got):\n%s", diff)
	}
}

func TestMerge_NothingNewDoesNotCreateFile(t *testing.T) {
	s := newStore(t, "")

	added, skipped, err := s.Merge(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Empty(t, skipped)

	_, err = os.Stat(s.Path())
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMerge_ConcurrentAddsAreNotLost(t *testing.T) {
	s := newStore(t, "")
	ctx := context.Background()

	mk := func(id string) pets.Pet {
		p := rex
		p.ID = id
		return p
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.Add(ctx, mk("a"+strconv.Itoa(i))))
		}(i)
		go func(i int) {
			defer wg.Done()
			_, _, err := s.Merge(ctx, []pets.Pet{mk("m" + strconv.Itoa(i))})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, fetch(t, s), 40)
}

func TestReplaceAll(t *testing.T) {
	s := newStore(t, "1,Rex,Dog,24,M,15,friendly\n")

	require.NoError(t, s.ReplaceAll(context.Background(), []pets.Pet{mia}))
	assert.Equal(t, []pets.Pet{mia}, fetch(t, s))
}

// Ejemplo completo: add, update, remove sobre una colección inicial.
func TestWorkedExample(t *testing.T) {
	s := newStore(t, "1,Rex,Dog,24,M,15,friendly\n")
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, mia))
	assert.Equal(t, []pets.Pet{rex, mia}, fetch(t, s))

	_, err := s.Update(ctx, "1", pets.Patch{Weight: "16"})
	require.NoError(t, err)

	rex16 := rex
	rex16.Weight = "16"
	assert.Equal(t, []pets.Pet{rex16, mia}, fetch(t, s))

	require.NoError(t, s.Remove(ctx, "2"))
	assert.Equal(t, []pets.Pet{rex16}, fetch(t, s))
}

func TestCancelledContext(t *testing.T) {
	s := newStore(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FetchAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
