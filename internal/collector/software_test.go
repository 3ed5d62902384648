package collector

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectSoftware(t *testing.T) {
	c := newTestCollector(Sources{Software: fakeSoftware{
		&fakeNamespace{name: "primary", entries: map[string]string{
			"{A}": "Zoom",
			"{B}": "  7-Zip 23.01 ",
			"{C}": "",
			"{D}": "<unreadable>",
		}},
		&fakeNamespace{name: "wow64", entries: map[string]string{
			"{E}": "7-Zip 23.01",
			"{F}": "adobe Reader",
			"{G}": "Adobe Reader",
		}},
		&fakeNamespace{name: "locked", err: errBoom},
	}})

	list, err := c.collectSoftware(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SoftwareList{"7-Zip 23.01", "Adobe Reader", "Zoom", "adobe Reader"}, list)
}

func TestCollectSoftwareNothingFound(t *testing.T) {
	c := newTestCollector(Sources{Software: fakeSoftware{
		&fakeNamespace{name: "locked", err: errBoom},
		&fakeNamespace{name: "empty"},
	}})

	list, err := c.collectSoftware(context.Background())
	require.NoError(t, err)

	b, err := json.Marshal(Ok(list))
	require.NoError(t, err)
	assert.Equal(t, `"not detected"`, string(b))
}

func TestCollectSoftwareUnavailable(t *testing.T) {
	c := newTestCollector(Sources{})
	_, err := c.collectSoftware(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
