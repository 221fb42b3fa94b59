package icons

// builtinIcons lists the icon names shipped in the icon repository.
var builtinIcons = map[string]bool{
	// Popular platforms
	"github": true, "linkedin": true, "x": true, "twitter": true, "telegram": true,
	"discord": true, "youtube": true, "spotify": true, "instagram": true, "facebook": true,
	"tiktok": true, "reddit": true, "medium": true, "notion": true,

	// Chinese platforms
	"wechat": true, "weibo": true, "bilibili": true, "xiaohongshu": true, "rednote": true,
	"zhihu": true, "qq": true, "dingtalk": true, "douyin": true,

	// Messaging
	"line": true, "whatsapp": true, "skype": true, "signal": true, "slack": true,
	"zoom": true, "teams": true, "feishu": true, "lark": true,

	// Music and media
	"soundcloud": true, "applemusic": true, "netease": true, "music163": true, "twitch": true,

	// Generic
	"home": true, "mail": true, "phone": true, "music": true, "message-square": true,

	// Payment
	"paypal": true, "patreon": true, "kofi": true,

	// Other
	"steam": true, "mastodon": true, "pinterest": true, "snapchat": true, "viber": true, "douban": true,
}

type domainIcon struct {
	pattern string
	icon    string
}

// domainIcons is matched in order against the link hostname; the first
// pattern contained in the hostname wins.
var domainIcons = []domainIcon{
	{"github.com", "github"},
	{"linkedin.com", "linkedin"},
	{"x.com", "x"},
	{"twitter.com", "x"},
	{"t.me", "telegram"},
	{"telegram.org", "telegram"},
	{"discord.gg", "discord"},
	{"discord.com", "discord"},
	{"youtube.com", "youtube"},
	{"youtu.be", "youtube"},
	{"spotify.com", "spotify"},
	{"instagram.com", "instagram"},
	{"facebook.com", "facebook"},
	{"tiktok.com", "tiktok"},
	{"reddit.com", "reddit"},
	{"medium.com", "medium"},
	{"notion.so", "notion"},
	{"notion.com", "notion"},

	{"weibo.com", "weibo"},
	{"bilibili.com", "bilibili"},
	{"xiaohongshu.com", "xiaohongshu"},
	{"zhihu.com", "zhihu"},
	{"qq.com", "qq"},
	{"dingtalk.com", "dingtalk"},
	{"douyin.com", "douyin"},

	{"line.me", "line"},
	{"whatsapp.com", "whatsapp"},
	{"wa.me", "whatsapp"},
	{"skype.com", "skype"},
	{"signal.org", "signal"},
	{"slack.com", "slack"},
	{"zoom.us", "zoom"},
	{"teams.microsoft.com", "teams"},
	{"feishu.cn", "feishu"},
	{"larksuite.com", "lark"},

	{"soundcloud.com", "soundcloud"},
	{"music.apple.com", "applemusic"},
	{"music.163.com", "netease"},
	{"twitch.tv", "twitch"},

	{"steamcommunity.com", "steam"},
	{"store.steampowered.com", "steam"},
	{"mastodon.social", "mastodon"},
	{"pinterest.com", "pinterest"},
	{"snapchat.com", "snapchat"},
	{"viber.com", "viber"},
	{"douban.com", "douban"},
	{"paypal.com", "paypal"},
	{"paypal.me", "paypal"},
	{"patreon.com", "patreon"},
	{"ko-fi.com", "kofi"},
	{"raw.githubusercontent.com", "home"},
}

// messagingKeywords are checked against the whole URL before the domain
// table, so contact links like wa.me/123 or weixin://...wechat resolve even
// when the host says nothing useful.
var messagingKeywords = []string{"wechat", "skype", "whatsapp"}
