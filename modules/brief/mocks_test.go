package brief_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/stroomai/leadgen/modules/brief"
	"github.com/stroomai/leadgen/pkg/email"
)

const testDescription = "We run a B2B analytics product and want a churn prediction model " +
	"trained on two years of usage events, exposed as a small internal API."

func validPayload() brief.Payload {
	return brief.Payload{
		Name:                 "Jane Doe",
		Email:                "jane@co.com",
		Company:              "",
		ProjectDescription:   testDescription,
		Stage:                "prototype",
		Timeline:             "short",
		DataAvailability:     "have-data",
		ExpectedDeliverables: "API + docs",
		EngagementModel:      "commission-hourly",
		BudgetRange:          "10k-25k",
	}
}

// MockSender is a mock implementation of email.Sender.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg email.Message) (email.Receipt, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(email.Receipt), args.Error(1)
}

// MockNotifier is a mock implementation of brief.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Dispatch(ctx context.Context, s brief.Submission) (brief.DispatchReceipt, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(brief.DispatchReceipt), args.Error(1)
}

// MockClassifier is a mock implementation of brief.SpamClassifier.
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, s brief.Submission, meta brief.Meta) (brief.Verdict, error) {
	args := m.Called(ctx, s, meta)
	return args.Get(0).(brief.Verdict), args.Error(1)
}

func tagged(tag string) any {
	return mock.MatchedBy(func(msg email.Message) bool { return msg.Tag == tag })
}
