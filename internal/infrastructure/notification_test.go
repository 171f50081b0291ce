package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/vidfetch-go/internal/domain"
)

func TestFailedMessage_IncludesReason(t *testing.T) {
	message := failedMessage("https://youtu.be/abc", domain.PlatformYouTube, domain.MsgNetworkError)
	assert.Equal(t, "Failed: https://youtu.be/abc (youtube): "+domain.MsgNetworkError, message)

	// no trailing separator when the caller has nothing to say
	assert.Equal(t, "Failed: https://youtu.be/abc (youtube)",
		failedMessage("https://youtu.be/abc", domain.PlatformYouTube, ""))
}

func TestCompletedMessage_TruncatesLongURL(t *testing.T) {
	long := "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabcdef"
	message := completedMessage(long, domain.PlatformYouTube)
	assert.Equal(t, "Success: "+long[:30]+"... (youtube)", message)
}
