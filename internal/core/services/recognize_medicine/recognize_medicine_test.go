package recognizemedicine

import (
	"context"
	"errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/recognition"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	"testing"

	"github.com/stretchr/testify/suite"
)

var PNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
}

type testSuite struct {
	suite.Suite
	Recognizer *recognition.FakeRecognizer
	Storage    *recognition.FakeImageStorage
	Service    services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Recognizer = recognition.NewFakeRecognizer(recognition.Analysis{
		MedicineName: "Paracetamol",
		Dosage:       "500mg",
		Confidence:   "high",
	})
	suite.Storage = recognition.NewFakeImageStorage()
	suite.Service = New(logging.NewFakeLogger(), suite.Recognizer, suite.Storage)
}

func TestRecognizeMedicineService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestStoredUpload() {
	result, err := suite.Service.Run(context.Background(), Input{
		UserID: user.ID(1),
		Image:  recognition.Image{Data: PNG, MimeType: "image/png"},
		Store:  true,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal("Paracetamol", result.Analysis.MedicineName)
	assert.True(result.ImagePath.IsPresent)
	assert.Equal("/uploads/1.png", result.ImagePath.Value)
	assert.Len(suite.Recognizer.Recognized, 1)
}

func (suite *testSuite) TestNotStored() {
	result, err := suite.Service.Run(context.Background(), Input{
		UserID: user.ID(1),
		Image:  recognition.Image{Data: PNG, MimeType: "image/png"},
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.False(result.ImagePath.IsPresent)
	assert.Empty(suite.Storage.Stored)
}

func (suite *testSuite) TestDetectedTypeWins() {
	_, err := suite.Service.Run(context.Background(), Input{
		UserID: user.ID(1),
		Image:  recognition.Image{Data: PNG, MimeType: "image/jpeg"},
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal("image/png", suite.Recognizer.Recognized[0].MimeType)
}

func (suite *testSuite) TestRejectsNonImage() {
	_, err := suite.Service.Run(context.Background(), Input{
		UserID: user.ID(1),
		Image:  recognition.Image{Data: []byte("%PDF-1.4 not an image"), MimeType: "image/png"},
		Store:  true,
	})

	assert := suite.Require()
	assert.ErrorIs(err, recognition.ErrUnsupportedImageType)
	assert.Empty(suite.Storage.Stored)
	assert.Empty(suite.Recognizer.Recognized)
}

func (suite *testSuite) TestRejectsEmptyImage() {
	_, err := suite.Service.Run(context.Background(), Input{UserID: user.ID(1)})

	suite.Require().ErrorIs(err, recognition.ErrNoImage)
}

func (suite *testSuite) TestRecognizerError() {
	suite.Recognizer.Error = errors.New("model overloaded")

	_, err := suite.Service.Run(context.Background(), Input{
		UserID: user.ID(1),
		Image:  recognition.Image{Data: PNG, MimeType: "image/png"},
	})

	suite.Require().NotNil(err)
}

func (suite *testSuite) TestRateLimitKeyIsPerUser() {
	suite.Require().Equal("recognize-medicine::7", Input{UserID: user.ID(7)}.GetRateLimitKey())
}
