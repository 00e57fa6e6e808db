package pipe

import (
	"testing"
	"time"

	"tinyhttp/transport"
	"tinyhttp/transport/test"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PipeTestSuite struct {
	test.ConnTestSuite
}

func TestPipeTestSuite(t *testing.T) {
	suite.Run(t, new(PipeTestSuite))
}

func (s *PipeTestSuite) SetupTest() {
	s.ConnTestSuite.SetupTest()
	s.C1, s.C2 = Pipe("A", "B", s.Clock, 16)
}

// Writes bigger than the buffer complete once the reader catches up.
func (s *PipeTestSuite) TestWriteBiggerThanBuffer() {
	data := make([]byte, 100)
	for i := range data {
		data[i] = byte(i)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		n, err := s.C1.Write(data)
		s.NoError(err)
		s.Equal(len(data), n)
		s.NoError(s.C1.Close())
	}()

	got := make([]byte, 0, len(data))
	b := make([]byte, 7)
	for {
		n, err := s.C2.Read(b)
		got = append(got, b[:n]...)
		if err != nil {
			s.Equal(data, got)
			break
		}
	}
	<-done
}

func TestPipeMockDeadLine(t *testing.T) {
	mock := clock.NewMock()
	c1, c2 := Pipe("A", "B", mock, 16)
	defer c1.Close()
	defer c2.Close()

	c1.SetReadDeadLine(mock.Now().Add(time.Second))

	done := make(chan error, 1)
	go func() {
		_, err := c1.Read(make([]byte, 1))
		done <- err
	}()

	select {
	case err := <-done:
		t.Fatalf("read returned before the deadline: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	mock.Add(time.Second)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, transport.ErrDeadLineExceeded)
	case <-time.After(time.Second):
		require.Fail(t, "read did not observe the deadline")
	}
}

func TestPipeCloseTwice(t *testing.T) {
	c1, c2 := Pipe("A", "B", clock.New(), 1)
	defer c2.Close()

	require.NoError(t, c1.Close())
	assert.ErrorIs(t, c1.Close(), transport.ErrConnClosed)
}
