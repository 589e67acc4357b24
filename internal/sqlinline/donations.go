// Package sqlinline holds every SQL statement the handlers execute. Each
// constant starts with a marker line; infra.SQLRunner strips it and uses it
// as the logging key for the query.
package sqlinline

const QInsertDonation = `--sql 3f1c2a9e-8d44-4b1a-9c62-5e0d7b6a1f20
insert into donations(id, name, email, amount, payment_method, type, status, program_id, created_at)
values (gen_random_uuid(), $1::text, $2::text, $3::bigint, $4::text, $5::text, $6::text, nullif($7::text, '')::uuid, now())
returning id, created_at;
`

const QListDonations = `--sql 7be4d1c0-52aa-4f3e-8a17-c9f04e2d8b65
select id, name, email, amount, payment_method, type, status, program_id, created_at
from donations
order by created_at desc;
`

const QGeneralDonationTotals = `--sql a92f6e38-1b07-4c55-bd20-84d3f7a15c9e
select coalesce(sum(amount), 0)::bigint, count(*)::bigint
from donations
where type = 'general';
`
