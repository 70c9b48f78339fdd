package catalog

import "github.com/custodia-labs/stackprobe/internal/core/domain"

// Categories used by the built-in signatures.
const (
	Framework    = "Framework"
	Library      = "Library"
	CMS          = "CMS"
	Analytics    = "Analytics"
	CDN          = "CDN"
	Hosting      = "Hosting"
	UI           = "UI"
	Payment      = "Payment"
	Support      = "Support"
	Security     = "Security"
	Monitoring   = "Monitoring"
	FeatureFlags = "Feature Flags"
	ABTesting    = "A/B Testing"
	Marketing    = "Marketing"
)

// builtin is the signature table in catalog order.
// React deliberately does not key on __NEXT_DATA__; that marker belongs to Next.js.
var builtin = []domain.Signature{
	// Frameworks
	{Name: "React", Category: Framework, Match: anyOf(pattern(`react[-.]|__react|reactDOM|_reactRoot`), contains("data-reactroot"))},
	{Name: "Next.js", Category: Framework, Match: contains("__NEXT_DATA__", "/_next/")},
	{Name: "Vue.js", Category: Framework, Match: pattern(`vue[-.]|__vue|data-v-[a-f0-9]`)},
	{Name: "Nuxt", Category: Framework, Match: contains("__NUXT__", "/_nuxt/")},
	{Name: "Angular", Category: Framework, Match: anyOf(pattern(`ng-version|ng-app|angular[.-]`), contains("ng-"))},
	{Name: "Svelte", Category: Framework, Match: anyOf(pattern(`svelte[-.]|__svelte`), pattern(`class="svelte-[a-z0-9]+"`))},
	{Name: "SvelteKit", Category: Framework, Match: contains("__sveltekit")},
	{Name: "Astro", Category: Framework, Match: anyOf(contains("astro-"), pattern(`astro-island|astro-slot`))},
	{Name: "Gatsby", Category: Framework, Match: contains("___gatsby", "/page-data/")},
	{Name: "Remix", Category: Framework, Match: contains("__remix", "__remixContext")},

	// Libraries
	{Name: "jQuery", Category: Library, Match: pattern(`jquery[.-]|jquery\.min\.js`)},
	{Name: "Bootstrap", Category: Library, Match: pattern(`bootstrap[.-]|bootstrap\.min`)},
	{Name: "Tailwind CSS", Category: Library, Match: anyOf(pattern(`tailwindcss|tailwind\.min`), contains("tailwind"))},
	{Name: "Alpine.js", Category: Library, Match: pattern(`alpine[.-]|x-data|x-bind|x-on`)},
	{Name: "HTMX", Category: Library, Match: pattern(`htmx[.-]|hx-get|hx-post|hx-trigger`)},

	// CMS
	{Name: "WordPress", Category: CMS, Match: pattern(`wp-content|wp-includes|wp-json`)},
	{Name: "Drupal", Category: CMS, Match: pattern(`drupal|sites/default/files`)},
	{Name: "Shopify", Category: CMS, Match: pattern(`shopify|cdn\.shopify\.com`)},
	{Name: "Squarespace", Category: CMS, Match: pattern(`squarespace|static\.squarespace\.com`)},
	{Name: "Wix", Category: CMS, Match: pattern(`wix\.com|wixstatic\.com|_wix_browser_sess`)},
	{Name: "Webflow", Category: CMS, Match: pattern(`webflow|assets\.website-files\.com|data-wf-`)},
	{Name: "Ghost", Category: CMS, Match: pattern(`ghost-|content/images|ghost\.org`)},
	{Name: "Contentful", Category: CMS, Match: pattern(`contentful|ctfassets\.net`)},
	{Name: "Strapi", Category: CMS, Match: pattern(`strapi`)},

	// Analytics
	{Name: "Google Analytics", Category: Analytics, Match: pattern(`google-analytics|googletagmanager|gtag|ga\.js|analytics\.js|G-[A-Z0-9]+|UA-[0-9]+-[0-9]+`)},
	{Name: "Google Tag Manager", Category: Analytics, Match: pattern(`googletagmanager\.com/gtm`)},
	{Name: "Plausible", Category: Analytics, Match: pattern(`plausible\.io`)},
	{Name: "Fathom", Category: Analytics, Match: pattern(`usefathom\.com|cdn\.usefathom`)},
	{Name: "PostHog", Category: Analytics, Match: pattern(`posthog|app\.posthog\.com`)},
	{Name: "Segment", Category: Analytics, Match: allOf(pattern(`cdn\.segment\.com|analytics\.js`), contains("segment"))},
	{Name: "Hotjar", Category: Analytics, Match: pattern(`hotjar|static\.hotjar\.com`)},
	{Name: "Mixpanel", Category: Analytics, Match: pattern(`mixpanel`)},
	{Name: "Vercel Analytics", Category: Analytics, Match: anyOf(pattern(`vercel\.com/analytics|vitals\.vercel-analytics|va\.vercel-scripts`), contains("_vercel"))},

	// CDN and hosting
	{Name: "Cloudflare", Category: CDN, Match: pattern(`cloudflare|cf-ray|__cf_`)},
	{Name: "Vercel", Category: Hosting, Match: pattern(`vercel|\.vercel\.app|_vercel`)},
	{Name: "Netlify", Category: Hosting, Match: pattern(`netlify`)},
	{Name: "AWS", Category: CDN, Match: pattern(`amazonaws\.com|cloudfront\.net`)},
	{Name: "Fastly", Category: CDN, Match: pattern(`fastly`)},

	// Other
	{Name: "Font Awesome", Category: UI, Match: pattern(`font-awesome|fontawesome|fa-brands|fa-solid`)},
	{Name: "Google Fonts", Category: UI, Match: pattern(`fonts\.googleapis\.com|fonts\.gstatic\.com`)},
	{Name: "Stripe", Category: Payment, Match: pattern(`stripe\.com|js\.stripe`)},
	{Name: "Intercom", Category: Support, Match: pattern(`intercom|widget\.intercom\.io`)},
	{Name: "Crisp", Category: Support, Match: pattern(`crisp\.chat|client\.crisp\.chat`)},
	{Name: "Zendesk", Category: Support, Match: pattern(`zendesk|zdassets\.com`)},
	{Name: "reCAPTCHA", Category: Security, Match: pattern(`recaptcha|google\.com/recaptcha`)},
	{Name: "hCaptcha", Category: Security, Match: pattern(`hcaptcha`)},
	{Name: "Sentry", Category: Monitoring, Match: pattern(`sentry\.io|browser\.sentry-cdn`)},
	{Name: "Datadog", Category: Monitoring, Match: pattern(`datadoghq\.com|dd-rum`)},
	{Name: "LaunchDarkly", Category: FeatureFlags, Match: pattern(`launchdarkly`)},
	{Name: "Optimizely", Category: ABTesting, Match: pattern(`optimizely`)},
	{Name: "Hubspot", Category: Marketing, Match: pattern(`hubspot|hs-scripts|hbspt`)},
	{Name: "Mailchimp", Category: Marketing, Match: pattern(`mailchimp|chimpstatic`)},
	{Name: "Drift", Category: Support, Match: pattern(`drift\.com|js\.driftt\.com`)},
}
