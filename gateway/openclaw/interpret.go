package openclaw

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/hearthlabs/clawbridge/core"
)

// completionResponse is the expected 2xx body. The schema is fixed: reply
// text must be present at choices[0].message.content, and anything that does
// not decode into this shape is a malformed response rather than a
// best-effort field hunt.
type completionResponse struct {
	ID      string   `json:"id"`
	Choices []choice `json:"choices"`
}

type choice struct {
	Index        int           `json:"index"`
	Message      choiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type choiceMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// streamChunk is one SSE data payload of a streamed completion.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// errorBody captures the gateway's error envelope, which is either a bare
// string ({"error":"internal"}) or an object with a message field.
type errorBody struct {
	Error json.RawMessage `json:"error"`
}

// interpret turns a raw (status, body) pair into reply text or a fault.
// Non-2xx statuses become auth/remote faults; 2xx bodies are decoded
// strictly against the completion schema. Reply text is returned with
// surrounding whitespace trimmed and is never inspected for tool or skill
// directives; those are the gateway's business.
func interpret(status int, body []byte) (string, error) {
	if !is2xx(status) {
		return "", statusFault(status, body)
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", core.NewFault(core.FaultMalformedResponse, "undecodable completion body", err)
	}
	if len(completion.Choices) == 0 {
		return "", core.NewFault(core.FaultMalformedResponse, "completion carried no choices", nil)
	}
	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", core.NewFault(core.FaultMalformedResponse, "completion carried empty reply", nil)
	}
	return text, nil
}

// remoteMessage extracts the gateway's own error message from a non-2xx
// body. Returns "" when the body has no usable message.
func remoteMessage(body []byte) string {
	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Error) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(envelope.Error, &asString); err == nil {
		return asString
	}
	var asObject struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Error, &asObject); err == nil {
		return asObject.Message
	}
	return ""
}

// collectStream reads SSE lines ("data: {...}") and concatenates the delta
// content until the [DONE] terminator or EOF. Chunks that fail to decode are
// skipped rather than failing the whole reply, matching the tolerant
// behavior expected of stream consumers.
func collectStream(r io.Reader) (string, error) {
	var sb strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxBodyBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		data, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			continue
		}
		if data == "[DONE]" {
			break
		}
		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) > 0 {
			sb.WriteString(chunk.Choices[0].Delta.Content)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return strings.TrimSpace(sb.String()), nil
}
