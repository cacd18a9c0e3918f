package testutil

import (
	"fmt"

	tele "gopkg.in/telebot.v3"
)

// FakeContext records what a handler sends. Methods it does not override
// panic through the nil embedded Context.
type FakeContext struct {
	tele.Context

	User      *tele.User
	Msg       *tele.Message
	Cb        *tele.Callback
	Sent      []string
	Edited    []string
	Markups   []*tele.ReplyMarkup
	Response  []*tele.CallbackResponse
	Responded int
	EditErr   error
}

// NewFakeContext creates a context for a text message from userID
func NewFakeContext(userID int64, text string) *FakeContext {
	return &FakeContext{
		User: &tele.User{ID: userID, Username: "tester"},
		Msg:  &tele.Message{Text: text},
	}
}

// NewFakeCommand creates a context for a command with its payload
func NewFakeCommand(userID int64, command, payload string) *FakeContext {
	c := NewFakeContext(userID, command+" "+payload)
	c.Msg.Payload = payload
	return c
}

// NewFakeCallback creates a context for an inline button press
func NewFakeCallback(userID int64, unique, data string) *FakeContext {
	c := NewFakeContext(userID, "")
	c.Cb = &tele.Callback{ID: "cb", Unique: unique, Data: data}
	return c
}

func (c *FakeContext) Sender() *tele.User       { return c.User }
func (c *FakeContext) Message() *tele.Message   { return c.Msg }
func (c *FakeContext) Text() string             { return c.Msg.Text }
func (c *FakeContext) Callback() *tele.Callback { return c.Cb }

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	c.Sent = append(c.Sent, fmt.Sprint(what))
	c.Markups = append(c.Markups, markupOf(opts))
	return nil
}

func (c *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	if c.EditErr != nil {
		return c.EditErr
	}
	c.Edited = append(c.Edited, fmt.Sprint(what))
	c.Markups = append(c.Markups, markupOf(opts))
	return nil
}

func (c *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	c.Responded++
	c.Response = append(c.Response, resp...)
	return nil
}

// Last returns the last sent or edited text
func (c *FakeContext) Last() string {
	if len(c.Edited) > 0 && len(c.Sent) == 0 {
		return c.Edited[len(c.Edited)-1]
	}
	if len(c.Sent) == 0 {
		return ""
	}
	return c.Sent[len(c.Sent)-1]
}

func markupOf(opts []interface{}) *tele.ReplyMarkup {
	for _, opt := range opts {
		if markup, ok := opt.(*tele.ReplyMarkup); ok {
			return markup
		}
	}
	return nil
}
