package sqlinline

const QInsertMember = `--sql c58b02d7-94e1-4a6f-b3c8-2f71da60e934
insert into kakasaku_members(id, name, email, phone, monthly_amount, payment_status, due_date, created_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, $4::bigint, $5::text, $6::date, now())
returning id, created_at;
`

const QListMembers = `--sql 1d0a73f2-6c8b-4e29-a5d4-90b61c47e8fa
select id, name, email, phone, monthly_amount, payment_status, due_date, created_at
from kakasaku_members
order by created_at desc;
`

const QSetMemberPaymentStatus = `--sql e7963b41-08dc-4f72-b1a9-3c5f82d06e17
update kakasaku_members
set payment_status = $2::text
where id = $1::uuid
returning id, name, email, phone, monthly_amount, payment_status, due_date, created_at;
`
