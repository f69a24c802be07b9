package recipient_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dmitrymomot/notifykit/pkg/recipient"
)

func emailValues(c *recipient.Collector) []string {
	var out []string
	for _, r := range c.Recipients() {
		if r.Type == recipient.TypeEmail {
			out = append(out, r.Value)
		}
	}
	return out
}

func assertUniqueEmails(t *testing.T, c *recipient.Collector) {
	t.Helper()
	seen := map[string]bool{}
	for _, v := range emailValues(c) {
		assert.False(t, seen[v], "duplicate email %s", v)
		seen[v] = true
	}
}

func TestCollector_AddSingle(t *testing.T) {
	t.Parallel()

	t.Run("adds then rejects duplicate", func(t *testing.T) {
		t.Parallel()
		c := recipient.NewCollector()

		require.NoError(t, c.AddSingle("a@b.com"))
		assert.Equal(t, []recipient.Recipient{{Type: recipient.TypeEmail, Value: "a@b.com", Label: "a@b.com"}}, c.Recipients())

		err := c.AddSingle("a@b.com")
		assert.ErrorIs(t, err, recipient.ErrDuplicate)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("duplicate after normalization", func(t *testing.T) {
		t.Parallel()
		c := recipient.NewCollector()
		require.NoError(t, c.AddSingle("  Joe@Example.com "))
		assert.ErrorIs(t, c.AddSingle("joe@example.COM"), recipient.ErrDuplicate)
		assert.Equal(t, []string{"joe@example.com"}, emailValues(c))
	})

	invalid := []string{"", "   ", "joe", "joe@", "@x.com", "joe@x", "joe@x.c", "a@b.com c@d.com", "Joe <joe@x.com>"}
	for _, in := range invalid {
		t.Run("invalid "+in, func(t *testing.T) {
			t.Parallel()
			c := recipient.NewCollector()
			assert.ErrorIs(t, c.AddSingle(in), recipient.ErrInvalidEmail)
			assert.Zero(t, c.Len())
		})
	}
}

func TestCollector_DotOnlyLocalPart(t *testing.T) {
	t.Parallel()

	t.Run("single add is rejected", func(t *testing.T) {
		t.Parallel()
		c := recipient.NewCollector()
		for _, raw := range []string{"..@x.com", ".@z.net", "...@y.org"} {
			assert.ErrorIs(t, c.AddSingle(raw), recipient.ErrInvalidEmail, raw)
		}
		assert.Zero(t, c.Len())
	})

	t.Run("bulk add drops them", func(t *testing.T) {
		t.Parallel()
		c := recipient.NewCollector()
		_, err := c.AddBulk("...@y.org or .@z.net")
		assert.ErrorIs(t, err, recipient.ErrNoMatch)
		assert.Zero(t, c.Len())

		n, err := c.AddBulk("..@x.com, ana@escola.edu.br")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, []string{"ana@escola.edu.br"}, emailValues(c))
	})

	t.Run("stored values stay valid", func(t *testing.T) {
		t.Parallel()
		c := recipient.NewCollector()
		_, err := c.AddFromFile([]byte("email\n..@x.com\n.bia.@x.com\n"), "lista.csv")
		require.NoError(t, err)
		for _, v := range emailValues(c) {
			assert.True(t, recipient.IsValidEmail(v), v)
		}
		text, err := c.ExportAsText()
		require.NoError(t, err)
		assert.Equal(t, "bia@x.com", text)
	})
}

func TestCollector_AddInput(t *testing.T) {
	t.Parallel()
	c := recipient.NewCollector()

	c.SetInput("bad")
	assert.ErrorIs(t, c.AddInput(), recipient.ErrInvalidEmail)
	assert.Equal(t, "bad", c.Input())

	c.SetInput("ann@y.com")
	require.NoError(t, c.AddInput())
	assert.Empty(t, c.Input())

	c.SetInput("ann@y.com")
	assert.ErrorIs(t, c.AddInput(), recipient.ErrDuplicate)
	assert.Equal(t, "ann@y.com", c.Input())
}

func TestCollector_AddBulk(t *testing.T) {
	t.Parallel()

	t.Run("extracts in order and dedupes within batch", func(t *testing.T) {
		t.Parallel()
		c := recipient.NewCollector()
		require.NoError(t, c.AddSingle("existing@x.com"))

		n, err := c.AddBulk("to: zed@x.com; existing@x.com, amy@y.org\nZED@x.com and bob@z.net.")
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, []string{"existing@x.com", "zed@x.com", "amy@y.org", "bob@z.net"}, emailValues(c))
	})

	t.Run("second call is a no-op", func(t *testing.T) {
		t.Parallel()
		text := "one@a.com two@b.com one@a.com"

		once := recipient.NewCollector()
		_, err := once.AddBulk(text)
		require.NoError(t, err)

		twice := recipient.NewCollector()
		_, err = twice.AddBulk(text)
		require.NoError(t, err)
		n, err := twice.AddBulk(text)
		assert.ErrorIs(t, err, recipient.ErrNoMatch)
		assert.Zero(t, n)

		assert.Equal(t, once.Recipients(), twice.Recipients())
	})

	t.Run("no addresses", func(t *testing.T) {
		t.Parallel()
		c := recipient.NewCollector()
		_, err := c.AddBulk("nothing to see here")
		assert.ErrorIs(t, err, recipient.ErrNoMatch)
	})
}

func TestCollector_AddFromFile(t *testing.T) {
	t.Parallel()

	t.Run("csv any column", func(t *testing.T) {
		t.Parallel()
		c := recipient.NewCollector()
		n, err := c.AddFromFile([]byte("name,email\nJoe,joe@x.com\nAnn,ann@y.com"), "list.csv")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, []string{"joe@x.com", "ann@y.com"}, emailValues(c))
	})

	t.Run("csv extension is case insensitive", func(t *testing.T) {
		t.Parallel()
		c := recipient.NewCollector()
		n, err := c.AddFromFile([]byte("joe@x.com;ann@y.com\r\nbob@z.com"), "LIST.CSV")
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("txt free text", func(t *testing.T) {
		t.Parallel()
		c := recipient.NewCollector()
		n, err := c.AddFromFile([]byte("Contacts: joe@x.com, ann@y.com"), "notes.txt")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()
		c := recipient.NewCollector()
		_, err := c.AddFromFile([]byte("name,phone\nJoe,555"), "list.csv")
		assert.ErrorIs(t, err, recipient.ErrEmptyFile)
	})

	t.Run("all duplicates", func(t *testing.T) {
		t.Parallel()
		c := recipient.NewCollector()
		require.NoError(t, c.AddSingle("joe@x.com"))
		_, err := c.AddFromFile([]byte("joe@x.com"), "list.txt")
		assert.ErrorIs(t, err, recipient.ErrNoMatch)
	})

	t.Run("xlsx cells", func(t *testing.T) {
		t.Parallel()
		f := excelize.NewFile()
		require.NoError(t, f.SetCellValue("Sheet1", "A1", "Nome"))
		require.NoError(t, f.SetCellValue("Sheet1", "B1", "E-mail"))
		require.NoError(t, f.SetCellValue("Sheet1", "A2", "Joe"))
		require.NoError(t, f.SetCellValue("Sheet1", "B2", "joe@x.com"))
		require.NoError(t, f.SetCellValue("Sheet1", "B3", "Ann <ann@y.com>"))
		buf, err := f.WriteToBuffer()
		require.NoError(t, err)

		c := recipient.NewCollector()
		n, err := c.AddFromFile(buf.Bytes(), "alunos.xlsx")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, []string{"joe@x.com", "ann@y.com"}, emailValues(c))
	})

	t.Run("broken xlsx", func(t *testing.T) {
		t.Parallel()
		c := recipient.NewCollector()
		_, err := c.AddFromFile([]byte("not a zip"), "alunos.xlsx")
		assert.ErrorIs(t, err, recipient.ErrReadFile)
	})

	t.Run("reader", func(t *testing.T) {
		t.Parallel()
		c := recipient.NewCollector()
		n, err := c.AddFromReader(strings.NewReader("joe@x.com"), "a.txt")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestCollector_DedupInvariant(t *testing.T) {
	t.Parallel()
	c := recipient.NewCollector()

	_ = c.AddSingle("a@x.com")
	_, _ = c.AddBulk("A@x.com b@x.com b@x.com")
	_, _ = c.AddFromFile([]byte("id,mail\n1,b@x.com\n2,c@x.com\n3,a@X.com"), "x.csv")
	_ = c.AddSingle("c@x.com")
	_, _ = c.AddFromFile([]byte("c@x.com d@x.com"), "x.txt")

	assertUniqueEmails(t, c)
	assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com"}, emailValues(c))
}

func TestCollector_Groups(t *testing.T) {
	t.Parallel()
	c := recipient.NewCollector()

	require.NoError(t, c.AddGroup("teachers", "Professores"))
	require.NoError(t, c.AddGroup("teachers", "Professores"))
	require.NoError(t, c.AddGroup("all_students", ""))
	assert.ErrorIs(t, c.AddGroup(" ", "x"), recipient.ErrInvalidGroup)

	list := c.Recipients()
	require.Len(t, list, 3)
	assert.Equal(t, recipient.Recipient{Type: recipient.TypeRole, Value: "teachers", Label: "Professores"}, list[0])
	assert.Equal(t, "All Students", list[2].Label)
	assert.Equal(t, 3, c.GroupCount())
	assert.Equal(t, 0, c.EmailCount())
}

func TestCollector_Users(t *testing.T) {
	t.Parallel()
	c := recipient.NewCollector()

	require.NoError(t, c.AddUser("42", "Maria"))
	assert.ErrorIs(t, c.AddUser("42", "Maria"), recipient.ErrDuplicate)
	assert.ErrorIs(t, c.AddUser("", ""), recipient.ErrInvalidUser)
	require.NoError(t, c.AddUser("43", ""))
	assert.Equal(t, "43", c.Recipients()[1].Label)
}

func TestCollector_RemoveAndClear(t *testing.T) {
	t.Parallel()
	c := recipient.NewCollector()
	_, err := c.AddBulk("a@x.com b@x.com c@x.com")
	require.NoError(t, err)

	assert.True(t, c.Remove(1))
	assert.Equal(t, []string{"a@x.com", "c@x.com"}, emailValues(c))

	assert.False(t, c.Remove(5))
	assert.False(t, c.Remove(-1))
	assert.Equal(t, 2, c.Len())

	c.ClearAll()
	assert.Zero(t, c.Len())
}

func TestCollector_ExportAsText(t *testing.T) {
	t.Parallel()
	c := recipient.NewCollector()

	_, err := c.ExportAsText()
	assert.ErrorIs(t, err, recipient.ErrEmptyExport)

	require.NoError(t, c.AddGroup("teachers", ""))
	_, err = c.ExportAsText()
	assert.ErrorIs(t, err, recipient.ErrEmptyExport)

	require.NoError(t, c.AddSingle("a@x.com"))
	require.NoError(t, c.AddSingle("b@x.com"))
	text, err := c.ExportAsText()
	require.NoError(t, err)
	assert.Equal(t, "a@x.com\nb@x.com", text)
}

func TestRecipientsIsACopy(t *testing.T) {
	t.Parallel()
	c := recipient.NewCollector()
	require.NoError(t, c.AddSingle("a@x.com"))

	list := c.Recipients()
	list[0].Value = "changed"
	assert.Equal(t, "a@x.com", c.Recipients()[0].Value)
}
