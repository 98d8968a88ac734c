package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseICEServersJSONSingleURL(t *testing.T) {
	servers, err := ParseICEServersJSON(`[{"urls":"stun:stun.l.google.com:19302"}]`)
	require.NoError(t, err)
	require.Len(t, servers, 1)
	require.Equal(t, []string{"stun:stun.l.google.com:19302"}, servers[0].URLs)
}

func TestParseICEServersJSONURLList(t *testing.T) {
	servers, err := ParseICEServersJSON(`[{"urls":["stun:a.example.com"," stun:b.example.com "]}]`)
	require.NoError(t, err)
	require.Len(t, servers, 1)
	require.Equal(t, []string{"stun:a.example.com", "stun:b.example.com"}, servers[0].URLs)
}

func TestParseICEServersJSONTurnWithCredentials(t *testing.T) {
	servers, err := ParseICEServersJSON(`[{"urls":"turn:turn.example.com:3478","username":"u","credential":"p"}]`)
	require.NoError(t, err)
	require.Len(t, servers, 1)
	require.Equal(t, "u", servers[0].Username)
	require.Equal(t, "p", servers[0].Credential)
}

func TestParseICEServersJSONTurnRequiresCredentials(t *testing.T) {
	_, err := ParseICEServersJSON(`[{"urls":"turn:turn.example.com:3478"}]`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "username")

	_, err = ParseICEServersJSON(`[{"urls":"turn:turn.example.com:3478","username":"u"}]`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "credential")
}

func TestParseICEServersJSONRejectsBadInput(t *testing.T) {
	_, err := ParseICEServersJSON(`not json`)
	require.Error(t, err)

	_, err = ParseICEServersJSON(`[{"urls":[]}]`)
	require.Error(t, err)

	_, err = ParseICEServersJSON(`[{"urls":"http://example.com"}]`)
	require.Error(t, err)
}
