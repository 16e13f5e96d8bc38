// Package mocks provides shared test doubles for the store and service
// interfaces.
//
// Most mocks use function fields with an in-memory default behavior, so a
// test only overrides what it asserts on:
//
//	users := mocks.NewMockUserStore()
//	users.CreateWithCredentialFn = func(ctx context.Context, u *domain.User, hash string) error {
//	    return store.ErrEmailExists
//	}
//
// TestifyMockUserStore is the testify/mock variant for tests that assert on
// call order and arguments.
package mocks
