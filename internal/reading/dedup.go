package reading

// topicTracker 记录单次格式化中已输出的主题
// 每次调用Format都会新建，不在调用之间共享
type topicTracker struct {
	groups  []TopicGroup
	claimed map[string]struct{}
}

func newTopicTracker(groups []TopicGroup) *topicTracker {
	return &topicTracker{
		groups:  groups,
		claimed: make(map[string]struct{}),
	}
}

// admit 返回单元是否可以继续处理
// 只看优先级最高的命中主题：已被占用则抑制，否则占用它
func (t *topicTracker) admit(text string) bool {
	name, ok := topicOf(t.groups, text)
	if !ok {
		return true
	}
	if _, claimed := t.claimed[name]; claimed {
		return false
	}
	t.claimed[name] = struct{}{}
	return true
}

// topicOf 返回文本命中的第一个主题名
func topicOf(groups []TopicGroup, text string) (string, bool) {
	for _, g := range groups {
		if g.Matches(text) {
			return g.Name, true
		}
	}
	return "", false
}
