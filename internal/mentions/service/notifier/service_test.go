package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mentiond/internal/mentions/mocks"
	"mentiond/internal/mentions/models"
	pkgerrors "mentiond/pkg/errors"
)

type collabMocks struct {
	users         *mocks.MockUsers
	groups        *mocks.MockGroups
	topics        *mocks.MockTopics
	posts         *mocks.MockPosts
	privileges    *mocks.MockPrivileges
	notifications *mocks.MockNotifications
	sent          *mocks.MockSentStore
}

func newMocks(ctrl *gomock.Controller) (Collaborators, *collabMocks) {
	m := &collabMocks{
		users:         mocks.NewMockUsers(ctrl),
		groups:        mocks.NewMockGroups(ctrl),
		topics:        mocks.NewMockTopics(ctrl),
		posts:         mocks.NewMockPosts(ctrl),
		privileges:    mocks.NewMockPrivileges(ctrl),
		notifications: mocks.NewMockNotifications(ctrl),
		sent:          mocks.NewMockSentStore(ctrl),
	}
	return Collaborators{
		Users:         m.users,
		Groups:        m.groups,
		Topics:        m.topics,
		Posts:         m.posts,
		Privileges:    m.privileges,
		Notifications: m.notifications,
		Sent:          m.sent,
	}, m
}

var dispatchTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, c Collaborators, settings models.Settings, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return dispatchTime })}, opts...)
	s, err := New(c, settings, opts...)
	require.NoError(t, err)
	return s
}

func testPost(content string) *models.Post {
	return &models.Post{ID: 7, TopicID: 5, CategoryID: 2, AuthorID: 10, Content: content}
}

func testTopic() *models.Topic {
	return &models.Topic{ID: 5, Title: "Release plans", CategoryID: 2}
}

// expectIdentity sets up the lookups shared by most dispatch paths: the
// candidate slugs resolve to users, the topic loads, the author resolves.
func expectIdentity(m *collabMocks, slugToUID map[string]models.UserID) {
	for slug, uid := range slugToUID {
		m.users.EXPECT().ExistsBySlug(gomock.Any(), slug).Return(true, nil)
		m.groups.EXPECT().ExistsBySlug(gomock.Any(), slug).Return(false, nil)
		m.users.EXPECT().IDBySlug(gomock.Any(), slug).Return(uid, nil)
	}
	m.topics.EXPECT().ByID(gomock.Any(), int64(5)).Return(testTopic(), nil)
	m.users.EXPECT().ByID(gomock.Any(), models.UserID(10)).Return(&models.User{ID: 10, Username: "author"}, nil)
}

func TestNotify_NilAndEmptyPost(t *testing.T) {
	c, _ := newMocks(gomock.NewController(t))
	s := newTestService(t, c, models.Settings{})

	require.NoError(t, s.Notify(context.Background(), nil))
	require.NoError(t, s.Notify(context.Background(), &models.Post{ID: 1}))
}

func TestNotify_SingleUserMention(t *testing.T) {
	c, m := newMocks(gomock.NewController(t))
	expectIdentity(m, map[string]models.UserID{"alice": 1})

	var created *models.Notification
	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *models.Notification) (*models.Notification, error) {
			created = n
			return n, nil
		})
	m.privileges.EXPECT().FilterReadable(gomock.Any(), int64(5), []models.UserID{1}).Return([]models.UserID{1}, nil)
	m.topics.EXPECT().FilterIgnoring(gomock.Any(), int64(5), []models.UserID{1}).Return([]models.UserID{1}, nil)
	m.sent.EXPECT().Contains(gomock.Any(), int64(7), []models.UserID{1}).Return([]bool{false}, nil)
	m.notifications.EXPECT().Push(gomock.Any(), gomock.Any(), []models.UserID{1}).Return(nil)
	m.sent.EXPECT().Add(gomock.Any(), int64(7), []models.UserID{1}, dispatchTime).Return(nil)

	hook := mocks.NewMockDeliveryHook(gomock.NewController(t))
	var event models.DeliveryEvent
	hook.EXPECT().Delivered(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, e models.DeliveryEvent) { event = e })

	s := newTestService(t, c, models.Settings{}, WithDeliveryHook(hook))
	require.NoError(t, s.Notify(context.Background(), testPost("hi @alice")))

	require.NotNil(t, created)
	assert.Equal(t, "tid:5:pid:7:uid:10:user", created.ID)
	assert.Equal(t, "mention", created.Type)
	assert.Equal(t, "[[notifications:user_mentioned_you_in, author, Release plans]]", created.BodyShort)
	assert.Equal(t, "/post/7", created.Path)
	assert.Equal(t, "Release plans", created.TopicTitle)
	assert.Equal(t, 6, created.Importance)

	assert.Equal(t, created.ID, event.NotificationID)
	assert.Equal(t, []models.UserID{1}, event.UserIDs)
}

func TestNotify_TitleEscaping(t *testing.T) {
	c, m := newMocks(gomock.NewController(t))
	m.users.EXPECT().ExistsBySlug(gomock.Any(), "alice").Return(true, nil)
	m.groups.EXPECT().ExistsBySlug(gomock.Any(), "alice").Return(false, nil)
	m.users.EXPECT().IDBySlug(gomock.Any(), "alice").Return(models.UserID(1), nil)
	m.topics.EXPECT().ByID(gomock.Any(), int64(5)).
		Return(&models.Topic{ID: 5, Title: "Q&amp;A, 100% honest", CategoryID: 2}, nil)
	m.users.EXPECT().ByID(gomock.Any(), models.UserID(10)).Return(&models.User{ID: 10, Username: "author"}, nil)

	var created *models.Notification
	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *models.Notification) (*models.Notification, error) {
			created = n
			return n, nil
		})
	m.privileges.EXPECT().FilterReadable(gomock.Any(), int64(5), gomock.Any()).Return([]models.UserID{1}, nil)
	m.topics.EXPECT().FilterIgnoring(gomock.Any(), int64(5), gomock.Any()).Return([]models.UserID{1}, nil)
	m.sent.EXPECT().Contains(gomock.Any(), int64(7), gomock.Any()).Return([]bool{false}, nil)
	m.notifications.EXPECT().Push(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.sent.EXPECT().Add(gomock.Any(), int64(7), gomock.Any(), dispatchTime).Return(nil)

	s := newTestService(t, c, models.Settings{})
	require.NoError(t, s.Notify(context.Background(), testPost("hi @alice")))

	require.NotNil(t, created)
	// Entities are decoded first, then the i18n argument separators escaped.
	assert.Equal(t, "Q&A, 100% honest", created.TopicTitle)
	assert.Equal(t, "[[notifications:user_mentioned_you_in, author, Q&A&#44; 100&#37; honest]]", created.BodyShort)
}

func TestNotify_AuthorSelfMentionExcluded(t *testing.T) {
	c, m := newMocks(gomock.NewController(t))
	expectIdentity(m, map[string]models.UserID{"author": 10})

	s := newTestService(t, c, models.Settings{})
	require.NoError(t, s.Notify(context.Background(), testPost("note to @author")))
}

func TestNotify_QuotedMentionsIgnored(t *testing.T) {
	c, _ := newMocks(gomock.NewController(t))
	s := newTestService(t, c, models.Settings{})

	content := "> @alice wrote this\n\nand `@bob` in code"
	require.NoError(t, s.Notify(context.Background(), testPost(content)))
}

func TestNotify_NoMentionGroupsExcluded(t *testing.T) {
	c, _ := newMocks(gomock.NewController(t))
	s := newTestService(t, c, models.Settings{DisableGroupMentions: []string{"staff"}})

	require.NoError(t, s.Notify(context.Background(), testPost("cc @registered-users @guests @staff")))
}

func TestNotify_FollowersSuppressedWhenDisabled(t *testing.T) {
	c, m := newMocks(gomock.NewController(t))
	expectIdentity(m, map[string]models.UserID{"alice": 1})
	m.topics.EXPECT().Followers(gomock.Any(), int64(5)).Return([]models.UserID{1}, nil)

	s := newTestService(t, c, models.Settings{DisableFollowedTopics: true})
	require.NoError(t, s.Notify(context.Background(), testPost("hi @alice")))
}

func TestNotify_FollowersNotifiedByDefault(t *testing.T) {
	c, m := newMocks(gomock.NewController(t))
	expectIdentity(m, map[string]models.UserID{"alice": 1})

	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *models.Notification) (*models.Notification, error) { return n, nil })
	m.privileges.EXPECT().FilterReadable(gomock.Any(), int64(5), []models.UserID{1}).Return([]models.UserID{1}, nil)
	m.topics.EXPECT().FilterIgnoring(gomock.Any(), int64(5), []models.UserID{1}).Return([]models.UserID{1}, nil)
	m.sent.EXPECT().Contains(gomock.Any(), int64(7), []models.UserID{1}).Return([]bool{false}, nil)
	m.notifications.EXPECT().Push(gomock.Any(), gomock.Any(), []models.UserID{1}).Return(nil)
	m.sent.EXPECT().Add(gomock.Any(), int64(7), []models.UserID{1}, dispatchTime).Return(nil)

	// Followers is never consulted when the setting is off.
	s := newTestService(t, c, models.Settings{})
	require.NoError(t, s.Notify(context.Background(), testPost("hi @alice")))
}

func TestNotify_AlreadySentSuppressed(t *testing.T) {
	c, m := newMocks(gomock.NewController(t))
	expectIdentity(m, map[string]models.UserID{"alice": 1})

	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *models.Notification) (*models.Notification, error) { return n, nil })
	m.privileges.EXPECT().FilterReadable(gomock.Any(), int64(5), []models.UserID{1}).Return([]models.UserID{1}, nil)
	m.topics.EXPECT().FilterIgnoring(gomock.Any(), int64(5), []models.UserID{1}).Return([]models.UserID{1}, nil)
	m.sent.EXPECT().Contains(gomock.Any(), int64(7), []models.UserID{1}).Return([]bool{true}, nil)

	// No push, no sent-store write, no hook.
	s := newTestService(t, c, models.Settings{})
	require.NoError(t, s.Notify(context.Background(), testPost("hi @alice")))
}

func TestNotify_SuppressedNotificationStopsSilently(t *testing.T) {
	c, m := newMocks(gomock.NewController(t))
	expectIdentity(m, map[string]models.UserID{"alice": 1})
	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, nil)

	s := newTestService(t, c, models.Settings{})
	require.NoError(t, s.Notify(context.Background(), testPost("hi @alice")))
}

func TestNotify_OverrideIgnoresSkipsFilter(t *testing.T) {
	c, m := newMocks(gomock.NewController(t))
	expectIdentity(m, map[string]models.UserID{"alice": 1})

	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *models.Notification) (*models.Notification, error) { return n, nil })
	m.privileges.EXPECT().FilterReadable(gomock.Any(), int64(5), []models.UserID{1}).Return([]models.UserID{1}, nil)
	m.sent.EXPECT().Contains(gomock.Any(), int64(7), []models.UserID{1}).Return([]bool{false}, nil)
	m.notifications.EXPECT().Push(gomock.Any(), gomock.Any(), []models.UserID{1}).Return(nil)
	m.sent.EXPECT().Add(gomock.Any(), int64(7), []models.UserID{1}, dispatchTime).Return(nil)

	s := newTestService(t, c, models.Settings{OverrideIgnores: true})
	require.NoError(t, s.Notify(context.Background(), testPost("hi @alice")))
}

func TestNotify_PrivilegedRecipientsDropped(t *testing.T) {
	c, m := newMocks(gomock.NewController(t))
	expectIdentity(m, map[string]models.UserID{"alice": 1, "bob": 2})

	// The post replies to bob, so bob stays despite being privileged;
	// alice is an administrator and is dropped.
	m.posts.EXPECT().ReplyTarget(gomock.Any(), int64(7)).Return(int64(99), nil)
	m.posts.EXPECT().AuthorID(gomock.Any(), int64(99)).Return(models.UserID(2), nil)
	m.users.EXPECT().IsAdministrator(gomock.Any(), models.UserID(1)).Return(true, nil)
	m.users.EXPECT().IsModerator(gomock.Any(), models.UserID(1), int64(2)).Return(false, nil)

	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *models.Notification) (*models.Notification, error) { return n, nil })
	m.privileges.EXPECT().FilterReadable(gomock.Any(), int64(5), []models.UserID{2}).Return([]models.UserID{2}, nil)
	m.topics.EXPECT().FilterIgnoring(gomock.Any(), int64(5), []models.UserID{2}).Return([]models.UserID{2}, nil)
	m.sent.EXPECT().Contains(gomock.Any(), int64(7), []models.UserID{2}).Return([]bool{false}, nil)
	m.notifications.EXPECT().Push(gomock.Any(), gomock.Any(), []models.UserID{2}).Return(nil)
	m.sent.EXPECT().Add(gomock.Any(), int64(7), []models.UserID{2}, dispatchTime).Return(nil)

	s := newTestService(t, c, models.Settings{PrivilegedDirectReplies: true})
	require.NoError(t, s.Notify(context.Background(), testPost("hi @alice @bob")))
}

func TestNotify_GroupMentionsClaimMembersInNameOrder(t *testing.T) {
	c, m := newMocks(gomock.NewController(t))

	for _, slug := range []string{"beta", "alpha"} {
		m.users.EXPECT().ExistsBySlug(gomock.Any(), slug).Return(false, nil)
		m.groups.EXPECT().ExistsBySlug(gomock.Any(), slug).Return(true, nil)
	}
	m.topics.EXPECT().ByID(gomock.Any(), int64(5)).Return(testTopic(), nil)
	m.users.EXPECT().ByID(gomock.Any(), models.UserID(10)).Return(&models.User{ID: 10, Username: "author"}, nil)

	m.groups.EXPECT().NameBySlug(gomock.Any(), "beta").Return("beta", nil)
	m.groups.EXPECT().Members(gomock.Any(), "beta").Return([]models.UserID{2, 3}, nil)
	m.groups.EXPECT().NameBySlug(gomock.Any(), "alpha").Return("alpha", nil)
	m.groups.EXPECT().Members(gomock.Any(), "alpha").Return([]models.UserID{1, 2}, nil)

	created := map[string][]models.UserID{}
	for _, g := range []struct {
		class string
		uids  []models.UserID
	}{
		{"alpha", []models.UserID{1, 2}},
		{"beta", []models.UserID{3}},
	} {
		m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n *models.Notification) (*models.Notification, error) { return n, nil })
		m.privileges.EXPECT().FilterReadable(gomock.Any(), int64(5), g.uids).Return(g.uids, nil)
		m.topics.EXPECT().FilterIgnoring(gomock.Any(), int64(5), g.uids).Return(g.uids, nil)
		m.sent.EXPECT().Contains(gomock.Any(), int64(7), g.uids).Return(make([]bool, len(g.uids)), nil)
		m.notifications.EXPECT().Push(gomock.Any(), gomock.Any(), g.uids).
			DoAndReturn(func(_ context.Context, n *models.Notification, uids []models.UserID) error {
				created[n.ID] = uids
				return nil
			})
		m.sent.EXPECT().Add(gomock.Any(), int64(7), g.uids, dispatchTime).Return(nil)
	}

	s := newTestService(t, c, models.Settings{})
	require.NoError(t, s.Notify(context.Background(), testPost("ping @beta and @alpha")))

	// alpha sorts first and claims the shared member 2; beta keeps only 3.
	assert.Equal(t, []models.UserID{1, 2}, created["tid:5:pid:7:uid:10:alpha"])
	assert.Equal(t, []models.UserID{3}, created["tid:5:pid:7:uid:10:beta"])
}

func TestNotify_GroupBodyFormat(t *testing.T) {
	c, m := newMocks(gomock.NewController(t))

	m.users.EXPECT().ExistsBySlug(gomock.Any(), "devs").Return(false, nil)
	m.groups.EXPECT().ExistsBySlug(gomock.Any(), "devs").Return(true, nil)
	m.topics.EXPECT().ByID(gomock.Any(), int64(5)).Return(testTopic(), nil)
	m.users.EXPECT().ByID(gomock.Any(), models.UserID(10)).Return(&models.User{ID: 10, Username: "author"}, nil)
	m.groups.EXPECT().NameBySlug(gomock.Any(), "devs").Return("Devs", nil)
	m.groups.EXPECT().Members(gomock.Any(), "Devs").Return([]models.UserID{1}, nil)

	var created *models.Notification
	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *models.Notification) (*models.Notification, error) {
			created = n
			return n, nil
		})
	m.privileges.EXPECT().FilterReadable(gomock.Any(), int64(5), []models.UserID{1}).Return([]models.UserID{1}, nil)
	m.topics.EXPECT().FilterIgnoring(gomock.Any(), int64(5), []models.UserID{1}).Return([]models.UserID{1}, nil)
	m.sent.EXPECT().Contains(gomock.Any(), int64(7), []models.UserID{1}).Return([]bool{false}, nil)
	m.notifications.EXPECT().Push(gomock.Any(), gomock.Any(), []models.UserID{1}).Return(nil)
	m.sent.EXPECT().Add(gomock.Any(), int64(7), []models.UserID{1}, dispatchTime).Return(nil)

	s := newTestService(t, c, models.Settings{})
	require.NoError(t, s.Notify(context.Background(), testPost("hey @devs")))

	require.NotNil(t, created)
	assert.Equal(t, "tid:5:pid:7:uid:10:Devs", created.ID)
	assert.Equal(t, "[[notifications:user_mentioned_group_in, author, Devs, Release plans]]", created.BodyShort)
}

func TestNotify_TopicMissing(t *testing.T) {
	c, m := newMocks(gomock.NewController(t))
	m.users.EXPECT().ExistsBySlug(gomock.Any(), "alice").Return(true, nil)
	m.groups.EXPECT().ExistsBySlug(gomock.Any(), "alice").Return(false, nil)
	m.topics.EXPECT().ByID(gomock.Any(), int64(5)).Return(nil, nil)

	s := newTestService(t, c, models.Settings{})
	err := s.Notify(context.Background(), testPost("hi @alice"))
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestNotify_PushFailureLeavesNoSentRecord(t *testing.T) {
	c, m := newMocks(gomock.NewController(t))
	expectIdentity(m, map[string]models.UserID{"alice": 1})

	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *models.Notification) (*models.Notification, error) { return n, nil })
	m.privileges.EXPECT().FilterReadable(gomock.Any(), int64(5), []models.UserID{1}).Return([]models.UserID{1}, nil)
	m.topics.EXPECT().FilterIgnoring(gomock.Any(), int64(5), []models.UserID{1}).Return([]models.UserID{1}, nil)
	m.sent.EXPECT().Contains(gomock.Any(), int64(7), []models.UserID{1}).Return([]bool{false}, nil)
	m.notifications.EXPECT().Push(gomock.Any(), gomock.Any(), []models.UserID{1}).Return(errors.New("push backend down"))

	s := newTestService(t, c, models.Settings{})
	err := s.Notify(context.Background(), testPost("hi @alice"))
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInternal))
}

func TestNotify_BatchesRecipientsAndPushesOnce(t *testing.T) {
	c, m := newMocks(gomock.NewController(t))
	expectIdentity(m, map[string]models.UserID{"ann": 1, "ben": 2, "cat": 3})

	m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *models.Notification) (*models.Notification, error) { return n, nil })

	gomock.InOrder(
		m.privileges.EXPECT().FilterReadable(gomock.Any(), int64(5), []models.UserID{1, 2}).Return([]models.UserID{1, 2}, nil),
		m.privileges.EXPECT().FilterReadable(gomock.Any(), int64(5), []models.UserID{3}).Return([]models.UserID{3}, nil),
	)
	m.topics.EXPECT().FilterIgnoring(gomock.Any(), int64(5), []models.UserID{1, 2}).Return([]models.UserID{1, 2}, nil)
	m.topics.EXPECT().FilterIgnoring(gomock.Any(), int64(5), []models.UserID{3}).Return([]models.UserID{3}, nil)
	m.sent.EXPECT().Contains(gomock.Any(), int64(7), []models.UserID{1, 2}).Return([]bool{false, false}, nil)
	m.sent.EXPECT().Contains(gomock.Any(), int64(7), []models.UserID{3}).Return([]bool{false}, nil)

	m.notifications.EXPECT().Push(gomock.Any(), gomock.Any(), []models.UserID{1, 2, 3}).Return(nil)
	m.sent.EXPECT().Add(gomock.Any(), int64(7), []models.UserID{1, 2, 3}, dispatchTime).Return(nil)

	s := newTestService(t, c, models.Settings{}, WithBatch(2, time.Millisecond))
	require.NoError(t, s.Notify(context.Background(), testPost("@ann @ben @cat")))
}

func TestNew_ValidatesCollaborators(t *testing.T) {
	c, _ := newMocks(gomock.NewController(t))
	c.Sent = nil
	_, err := New(c, models.Settings{})
	require.Error(t, err)

	_, err = New(Collaborators{}, models.Settings{})
	require.Error(t, err)
}
