package mocks

import (
	"github.com/stretchr/testify/mock"

	"visapath/visa-advisor/internal/services"
)

type MockDocumentParser struct {
	mock.Mock
}

func (m *MockDocumentParser) ExtractText(data []byte, filename string) (*services.DocumentContent, error) {
	args := m.Called(data, filename)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*services.DocumentContent), args.Error(1)
}

func (m *MockDocumentParser) ExtractTextFromFile(filePath string) (*services.DocumentContent, error) {
	args := m.Called(filePath)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*services.DocumentContent), args.Error(1)
}

func (m *MockDocumentParser) SupportedExtension(filename string) bool {
	args := m.Called(filename)

	return args.Bool(0)
}
