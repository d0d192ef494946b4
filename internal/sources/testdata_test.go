// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

const arxivAtom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:arxiv="http://arxiv.org/schemas/atom">
  <title>ArXiv Query</title>
  <entry>
    <id>http://arxiv.org/abs/2603.01234v2</id>
    <published>2026-03-09T17:59:59Z</published>
    <title>Deep Learning for
      Factor Zoo</title>
    <summary>We train a neural network to predict monthly returns.</summary>
    <author><name>Ann Lee</name></author>
    <author><name>Bo Chen</name></author>
    <arxiv:primary_category term="q-fin.PM"/>
    <category term="q-fin.PM"/>
    <category term="cs.LG"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2603.04321v1</id>
    <published>2026-03-08T10:00:00Z</published>
    <title>Herding in Options Markets</title>
    <summary>Investor herding.</summary>
    <author><name>A</name></author><author><name>B</name></author><author><name>C</name></author>
    <author><name>D</name></author><author><name>E</name></author><author><name>F</name></author>
    <category term="q-fin.TR"/>
  </entry>
  <entry>
    <id>not-an-arxiv-id</id>
    <title>Broken</title>
  </entry>
</feed>`

const rss2Feed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>NBER Working Papers</title>
    <item>
      <title>Sentiment and the Cross-Section of Returns</title>
      <link>https://www.nber.org/papers/w34001</link>
      <guid>w34001</guid>
      <description><![CDATA[<p>We measure <b>investor sentiment</b>.</p>]]></description>
      <dc:creator>Jane Doe</dc:creator>
      <dc:creator>John Roe</dc:creator>
      <pubDate>Mon, 09 Mar 2026 10:00:00 +0000</pubDate>
    </item>
    <item>
      <title>News</title>
      <link>https://www.nber.org/news</link>
    </item>
    <item>
      <title>CEO Overconfidence &amp; Mergers</title>
      <link>https://www.nber.org/papers/w34002</link>
      <description>Mergers&nbsp;and acquisitions.</description>
      <author>ceo@example.org (Pat Smith)</author>
    </item>
  </channel>
</rss>`

const atomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>urn:doi:10.1111/jofi.13400</id>
    <title>Liquidity Provision and Market Makers</title>
    <link rel="self" href="https://example.org/self"/>
    <link rel="alternate" href="https://onlinelibrary.wiley.com/doi/10.1111/jofi.13400"/>
    <summary>Bid-ask spreads widen.</summary>
    <updated>2026-03-07T00:00:00Z</updated>
    <author><name>Kim Park</name></author>
  </entry>
</feed>`

const rdfFeed = `<?xml version="1.0" encoding="ISO-8859-1"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns="http://purl.org/rss/1.0/" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel><title>NEP</title></channel>
  <item>
    <title>Tail Risk Hedging</title>
    <link>https://ideas.repec.org/p/abc/wpaper/1.html</link>
    <description>Crash risk.</description>
    <dc:date>2026-03-05</dc:date>
  </item>
</rdf:RDF>`

const crossrefJSON = `{
  "status": "ok",
  "message": {
    "items": [
      {
        "DOI": "10.1093/qje/qjae001",
        "title": ["Household Finance and Retirement Saving"],
        "abstract": "<jats:p>We study savings.</jats:p>",
        "author": [
          {"given": "A", "family": "One"}, {"given": "B", "family": "Two"},
          {"given": "C", "family": "Three"}, {"given": "D", "family": "Four"},
          {"given": "E", "family": "Five"}
        ],
        "published": {"date-parts": [[2026, 3, 4]]}
      },
      {
        "DOI": "10.1093/qje/qjae002",
        "title": ["Bank Runs"],
        "published": {"date-parts": [[2026, 2]]}
      },
      {
        "DOI": "10.1093/qje/qjae003",
        "title": [],
        "published": {"date-parts": [[2026, 2, 1]]}
      }
    ]
  }
}`
